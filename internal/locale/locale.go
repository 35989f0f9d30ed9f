// Package locale holds the translated labels and alert messages of the editor sidebar.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the fallback when a key has no translation.
const (
	ActionsHeader      = "sidebar/generation/actions"
	ProcessingHeader   = "sidebar/generation/processing"
	OpenImage          = "sidebar/generation/open"
	UploadImage        = "sidebar/generation/upload"
	Uploading          = "sidebar/generation/uploading"
	NoFileSelected     = "sidebar/generation/nofile"
	Upsampling         = "sidebar/generation/upsampling"
	UpsamplingBusy     = "sidebar/generation/upsampling/busy"
	GenerateMesh       = "sidebar/generation/mesh"
	GeneratingMesh     = "sidebar/generation/mesh/busy"
	Smoothing          = "sidebar/generation/smoothing"
	Laplacian          = "sidebar/generation/smoothing/laplacian"
	Taubin             = "sidebar/generation/smoothing/taubin"
	AlertNoSelection   = "sidebar/generation/alert/noselection"
	AlertNoFilePath    = "sidebar/generation/alert/nofilepath"
	AlertRequestFailed = "sidebar/generation/alert/failed"
)

var english = map[string]string{
	ActionsHeader:      "ACTIONS",
	ProcessingHeader:   "PROCESSING",
	OpenImage:          "Open Image",
	UploadImage:        "Upload Image",
	Uploading:          "Uploading ⏳",
	NoFileSelected:     "No file selected",
	Upsampling:         "Upsampling",
	UpsamplingBusy:     "Upsampling ⏳",
	GenerateMesh:       "Generate Mesh",
	GeneratingMesh:     "Generating mesh ⏳",
	Smoothing:          "Smoothing",
	Laplacian:          "Laplacian",
	Taubin:             "Taubin",
	AlertNoSelection:   "No object selected.",
	AlertNoFilePath:    "Selected object has no file path.",
	AlertRequestFailed: "%s failed: %v",
}

var vietnamese = map[string]string{
	ActionsHeader:      "THAO TÁC",
	ProcessingHeader:   "XỬ LÝ",
	OpenImage:          "Mở ảnh",
	UploadImage:        "Tải ảnh lên",
	Uploading:          "Đang tải lên ⏳",
	NoFileSelected:     "Chưa chọn tệp",
	Upsampling:         "Tăng mẫu",
	UpsamplingBusy:     "Đang tăng mẫu ⏳",
	GenerateMesh:       "Tạo lưới",
	GeneratingMesh:     "Đang tạo lưới ⏳",
	Smoothing:          "Làm mịn",
	Laplacian:          "Laplacian",
	Taubin:             "Taubin",
	AlertNoSelection:   "Chưa chọn đối tượng nào.",
	AlertNoFilePath:    "Đối tượng đã chọn không có đường dẫn tệp.",
	AlertRequestFailed: "%s thất bại: %v",
}

// Strings resolves message keys for one language.
type Strings struct {
	tag     language.Tag
	printer *message.Printer
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for k, v := range english {
		_ = b.SetString(language.English, k, v)
	}
	for k, v := range vietnamese {
		_ = b.SetString(language.Vietnamese, k, v)
	}
	return b
}

var supported = language.NewMatcher([]language.Tag{language.English, language.Vietnamese})

// New returns Strings for the given locale (e.g. "en", "vi", "vi-VN"). Unknown locales fall back to English.
func New(locale string) *Strings {
	tag, _, _ := supported.Match(language.Make(locale))
	base, _ := tag.Base()
	tag = language.Make(base.String())
	return &Strings{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(newCatalog())),
	}
}

// Language returns the resolved language tag.
func (s *Strings) Language() language.Tag {
	return s.tag
}

// Get returns the label for key; keys without a translation are returned as-is.
func (s *Strings) Get(key string) string {
	return s.printer.Sprintf(key)
}

// Format returns the label for key with args substituted.
func (s *Strings) Format(key string, args ...interface{}) string {
	return s.printer.Sprintf(key, args...)
}
