// Package paths provides helpers for the slash-separated paths printed by the
// disk simulation backend.
//
// Backend paths always use "/" regardless of the host OS, so this package
// deliberately avoids path/filepath. Segments are obtained by splitting on "/"
// and discarding empty segments, which absorbs leading, trailing and duplicate
// slashes.
//
// # Usage
//
//	import "github.com/GriffinCanCode/godisk/internal/shared/paths"
//
//	paths.Split("//home/user/")   // ["home" "user"]
//	paths.Base("/d/Disco1.mia")   // "Disco1.mia"
//	paths.Join([]string{"a","b"}) // "/a/b"
package paths
