package report

import "github.com/gosimple/slug"

const filenamePrefix = "supplier-responses-"

// Filename is the attachment name of a brief's report
func Filename(title string, f Format) string {
	return filenamePrefix + slug.Make(title) + f.Extension()
}
