package media

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

//go:generate mockgen -source=media_client.go -destination=mock/media_client_mock.go -package=mock
type Client interface {
	Upload(ctx context.Context, r io.Reader, filename string) (UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryClient struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret, folder string) (*CloudinaryClient, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryClient{cld: cld, folder: folder}, nil
}

func (c *CloudinaryClient) Upload(ctx context.Context, r io.Reader, filename string) (UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   c.folder,
		PublicID: filename,
	})
	if err != nil {
		return UploadResult{}, err
	}
	if res.Error.Message != "" {
		return UploadResult{}, errors.New(res.Error.Message)
	}
	return UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (c *CloudinaryClient) Destroy(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	// "not found" means the asset is already gone.
	if res.Result != "ok" && res.Result != "not found" {
		return errors.New("destroy returned " + res.Result)
	}
	return nil
}
