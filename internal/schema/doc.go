// Package schema declares the shape of a JSON configuration document.
//
// A shape is an ordered list of fields plus a default mapping. Each field knows
// where its value lives in the document (its path) and how to convert that value
// between the on-disk JSON representation and the in-memory one.
//
//	var Shape = schema.New("tdo").
//		Field("editor", schema.Identity()).
//		Field("last_sync", schema.Time(time.RFC3339)).
//		Field("color", schema.Identity(schema.At("ui__color"))).
//		Default("editor", "vi").
//		MustBuild()
//
// # Paths
//
// A field's path defaults to the name it was registered under. Paths may contain
// the separator "__" to address nested objects: "ui__color" points at
// document["ui"]["color"]. During a conversion pass a field whose path cannot be
// fully resolved because a key is absent is skipped; a path that runs into a
// non-object value before its last step is an error.
//
// # Defaults
//
// Defaults are either static values or producers. A producer receives the reader
// it is resolved against and the requested name, which lets a default depend on
// other values in the same document. Producers must be side-effect free.
package schema
