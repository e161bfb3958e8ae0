package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/intake"
)

var errUnsupportedForm = errors.New("expected multipart/form-data or application/x-www-form-urlencoded")

// readPayload decodes a form submission keeping entries in the order they
// were sent.
func readPayload(c *fiber.Ctx) (intake.Payload, error) {
	mediaType, params, err := mime.ParseMediaType(string(c.Request().Header.ContentType()))
	if err != nil {
		return intake.Payload{}, errUnsupportedForm
	}
	switch mediaType {
	case fiber.MIMEMultipartForm:
		return readMultipart(c.Body(), params["boundary"])
	case fiber.MIMEApplicationForm:
		var p intake.Payload
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			p.Add(string(k), string(v))
		})
		return p, nil
	}
	return intake.Payload{}, errUnsupportedForm
}

func readMultipart(body []byte, boundary string) (intake.Payload, error) {
	var p intake.Payload
	if boundary == "" {
		return p, errors.New("multipart boundary missing")
	}
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return p, fmt.Errorf("read multipart: %w", err)
		}
		key := part.FormName()
		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return p, fmt.Errorf("read part %q: %w", key, err)
		}
		if key == "" {
			continue
		}
		if isFilePart(part) || key == intake.KeyMainImage || key == intake.KeyImages {
			p.AddFile(intake.File{
				Key:         key,
				Filename:    part.FileName(),
				ContentType: part.Header.Get(fiber.HeaderContentType),
				Data:        data,
			})
			continue
		}
		p.Add(key, string(data))
	}
}

// isFilePart reports a filename parameter, even an empty one (an unused
// file input).
func isFilePart(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get(fiber.HeaderContentDisposition))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}
