package e2e

import (
	"archive/zip"
	"bytes"

	"github.com/xuri/excelize/v2"
)

// SupportedFileExtensions is the list of file extensions used in the
// file-based e2e tests. Covers plain text (.txt, .md, .rst), OOXML
// (.docx, .xlsx, .pptx), and OpenDocument (.odp, .ods). The extractor
// also handles .pdf, .odt, and .rtf; those parsers want real files, so
// no minimal fixtures are generated for them here.
var SupportedFileExtensions = []string{
	".txt", ".md", ".rst",
	".docx", ".xlsx", ".pptx", ".odp", ".ods",
}

// MinimalFileBytes returns the smallest file of the given extension from
// which the extractor recovers text verbatim. Plain extensions return the
// text unchanged; the rest return container bytes.
func MinimalFileBytes(ext, text string) ([]byte, error) {
	switch ext {
	case ".docx":
		return docxBytes(text), nil
	case ".pptx":
		return pptxBytes(text), nil
	case ".odp":
		return odpBytes(text), nil
	case ".ods":
		return odsBytes(text), nil
	case ".xlsx":
		return xlsxBytes(text)
	default:
		return []byte(text), nil
	}
}

func docxBytes(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("word/document.xml")
	_, _ = fw.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func pptxBytes(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("ppt/slides/slide1.xml")
	_, _ = fw.Write([]byte(`<p:sld xmlns:p="a" xmlns:a="b"><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`))
	_ = w.Close()
	return buf.Bytes()
}

func odpBytes(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("content.xml")
	_, _ = fw.Write([]byte(`<office:document><office:body><draw:page><draw:text-box><text:p>` + text + `</text:p></draw:text-box></draw:page></office:body></office:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func odsBytes(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("content.xml")
	_, _ = fw.Write([]byte(`<office:document><office:body><table:table><table:table-row><table:table-cell><text:p>` + text + `</text:p></table:table-cell></table:table-row></table:table></office:body></office:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func xlsxBytes(text string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetCellValue("Sheet1", "A1", text); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
