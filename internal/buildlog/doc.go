// Package buildlog turns the console output of `lake build` into metrics.
//
// Each line is classified by an ordered list of rules; the first rule whose pattern
// matches decides the line's Kind and later rules are not tried:
//
//	✔ [3/10] Built Foo.Bar (120ms)      KindLeanModule     build/Foo.Bar//eval time
//	✔ [4/10] Built Foo.Bar:c.o (2.5s)   KindNativeArtifact build/Foo.Bar//c.o time
//	✔ [5/10] Built ??? weird            KindAnomaly        warning only
//	anything else                       KindPlain          copied to the passthrough writer
//
// Durations accumulate into per-label Totals which are emitted under build/.total
// once the stream ends.
package buildlog
