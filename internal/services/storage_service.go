package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"helishuttle/internal/domain"
	"helishuttle/internal/utils"
)

const (
	IdentityCardFolder    = "identity_cards"
	MaxIdentityCardBytes  = 5 << 20
	identityCardSniffSize = 512
)

var identityCardTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

type UploadResult struct {
	SecureURL string `json:"secureUrl"`
	PublicID  string `json:"publicId"`
}

// ImageUploader stores a file in a remote folder.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (UploadResult, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, _, folder string) (UploadResult, error) {
	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return UploadResult{}, fmt.Errorf("cloudinary upload: no secure url returned")
	}
	return UploadResult{SecureURL: res.SecureURL, PublicID: res.PublicID}, nil
}

type StorageService struct {
	Uploader  ImageUploader
	RequestID string
}

// UploadIdentityCard checks size and content type, then hands the file to the
// uploader. Only images and PDFs up to 5 MB are accepted.
func (s StorageService) UploadIdentityCard(ctx context.Context, file io.Reader, filename string, size int64) (UploadResult, error) {
	if s.Uploader == nil {
		return UploadResult{}, domain.InternalError{Msg: "file uploads are not configured"}
	}
	if size <= 0 {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: "file is empty"}
	}
	if size > MaxIdentityCardBytes {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: "must be 5 MB or smaller"}
	}

	head := make([]byte, identityCardSniffSize)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return UploadResult{}, domain.InternalError{Msg: "could not read upload", Err: err}
	}
	head = head[:n]
	contentType, _, _ := strings.Cut(http.DetectContentType(head), ";")
	if !identityCardTypes[contentType] {
		return UploadResult{}, domain.ValidationError{Field: "file", Msg: "must be an image or PDF"}
	}

	res, err := s.Uploader.Upload(ctx, io.MultiReader(bytes.NewReader(head), file), filename, IdentityCardFolder)
	if err != nil {
		return UploadResult{}, domain.InternalError{Msg: "upload failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "uploads", "identity_card", "public_id="+res.PublicID)
	return res, nil
}
