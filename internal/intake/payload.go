// Package intake turns a flat form submission into a typed product plus
// free-form attributes, and forwards submitted images to storage.
package intake

// Keys with special meaning in a submission.
const (
	KeyMainImage = "image"
	KeyImages    = "images"

	// KeyImageURLs is never accepted from text; image URLs come only from
	// uploads.
	KeyImageURLs = "imageUrls"
)

// Field is one text entry of a submission.
type Field struct {
	Key   string
	Value string
}

// File is one binary entry of a submission.
type File struct {
	Key         string
	Filename    string
	ContentType string
	Data        []byte
}

// Payload is a submission in arrival order. A key may appear more than once.
type Payload struct {
	Fields []Field
	Files  []File
}

// Add appends a text entry.
func (p *Payload) Add(key, value string) {
	p.Fields = append(p.Fields, Field{Key: key, Value: value})
}

// AddFile appends a file entry.
func (p *Payload) AddFile(f File) {
	p.Files = append(p.Files, f)
}
