// Package jot is the Composition Root for the jot note keeper.
//
// It connects the note store and its load/save orchestration (pkg/core) with
// a key-value storage adapter (pkg/adapters) and a codec (pkg/codec).
//
// Notes are title/body pairs. The whole set is encoded into one string and
// kept under the "notes" key of the store. The default codec joins
// "title:body" pairs with ";" and escapes nothing, so titles and bodies must
// not contain those characters; the json and yaml codecs lift that limit.
//
// Usage:
//
//	svc, err := jot.New("./vault",
//		jot.WithAutoInit(true),
//		jot.WithLogger(logger),
//	)
//
//	// Fill the store and follow later changes.
//	err = svc.Start(ctx)
//
//	// Create a note; it is saved in the background.
//	note, err := svc.Create(ctx, "Groceries", "milk eggs bread")
package jot
