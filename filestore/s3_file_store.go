package filestore

import (
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// S3ImageStore uploads post images to an S3 bucket fronted by a CDN. The key
// is a fresh uuid plus the original file extension, so concurrent uploads of
// the same file never collide.
type S3ImageStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

func NewS3ImageStore(region string, bucket string, urlPrefix string) (*S3ImageStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3ImageStore{
		bucket:    bucket,
		urlPrefix: urlPrefix,
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

func (s *S3ImageStore) Save(fileName string, body io.Reader) (string, error) {
	key := uuid.New().String() + filepath.Ext(fileName)

	_, err := s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3ImageStore) URL(key string) string {
	return s.urlPrefix + key
}
