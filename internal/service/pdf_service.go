package service

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

type PDFServiceInterface interface {
	PageCount(data []byte) (int, error)
}

// PDFService opens documents with MuPDF to check that an upload is a
// readable PDF.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

func (s *PDFService) PageCount(data []byte) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}
