// Package event turns backend output text into typed explorer events.
//
// The backend prints human-readable confirmation blocks, one per executed
// command. A block starts with a marker line such as
//
//	MKDISK: Disco creado exitosamente
//	-> Path: /home/disks/Disco1.mia
//	-> Tamaño: 3000 KB
//
// and may continue with fixed-format follow-up lines. The Classifier matches
// markers verbatim (accents included) and maps each block to one variant of
// the closed Event union. A block whose follow-up lines are missing or
// malformed maps to Unrecognized; the classifier never returns an error,
// since the backend text is not guaranteed to be well formed.
//
// All coupling to the output format lives in this package so the rest of the
// explorer only sees typed events.
package event
