// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfa

// ExifToolArgs builds the invocation that copies document and XMP
// metadata from the pdflatex output into the Ghostscript output.
// Ghostscript's rewrite wipes the metadata the pdfx package embedded, so
// it has to be restored from the pre-rewrite file.
func ExifToolArgs(srcPDF, dstPDF string) []string {
	return []string{
		"-TagsFromFile", srcPDF,
		"-all:all>all:all",
		"-xmp-dc:all>xmp-dc:all",
		"-pdf:subject>pdf:subject",
		"-overwrite_original",
		dstPDF,
	}
}

// QPDFArgs builds the invocation that linearizes the final file in place.
// The newline before endstream keeps stream objects within what the
// PDF/A validators accept.
func QPDFArgs(pdfPath string) []string {
	return []string{
		"--linearize",
		"--newline-before-endstream",
		"--replace-input",
		pdfPath,
	}
}
