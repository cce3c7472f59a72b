// Package tex maps document structure to the semantic LaTeX markup consumed
// by the journal's document class.
//
// The package has three layers. [Mapping] is the lookup table from source
// style identifiers and block kinds to markup templates. [Emitter] walks a
// doc.Document in order and serializes each block through the mapping,
// escaping markup-significant characters in literal text. The typography and
// cleanup passes then polish the emitted source: TeX quote ligatures, dashes,
// non-breaking spaces for legal citations, CJK wrapping, and the merging of
// adjacent or nested formatting commands.
//
// [ExtractFootnotes] goes the other way: it pulls footnote bodies back out
// of an emitted .tex source for proofreading.
package tex
