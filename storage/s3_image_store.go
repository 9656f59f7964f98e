package storage

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/pkg/errors"
)

const defaultAWSRegion = "ap-northeast-2"

type S3ImageStore struct {
	bucket string
	// Public url prefix the bucket is served under, e.g. a cloudfront domain.
	publicPrefix string
	uploader     s3manageriface.UploaderAPI
}

func NewS3ImageStore(bucket string, publicPrefix string, uploader s3manageriface.UploaderAPI) *S3ImageStore {
	if !strings.HasSuffix(publicPrefix, "/") {
		publicPrefix += "/"
	}
	return &S3ImageStore{
		bucket:       bucket,
		publicPrefix: publicPrefix,
		uploader:     uploader,
	}
}

// NewS3ImageStoreFromEnv reads IMAGE_BUCKET, IMAGE_PUBLIC_PREFIX and
// AWS_REGION.
func NewS3ImageStoreFromEnv() (*S3ImageStore, error) {
	bucket := os.Getenv("IMAGE_BUCKET")
	if bucket == "" {
		return nil, errors.New("IMAGE_BUCKET is not set")
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultAWSRegion
	}
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	prefix := os.Getenv("IMAGE_PUBLIC_PREFIX")
	if prefix == "" {
		prefix = "https://" + bucket + ".s3." + region + ".amazonaws.com/"
	}
	return NewS3ImageStore(bucket, prefix, s3manager.NewUploader(sess)), nil
}

func (s *S3ImageStore) Upload(ctx context.Context, fileName string, contentType string, body io.Reader) (string, error) {
	key := imageKey(fileName)
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload image %s", key)
	}
	return s.publicPrefix + key, nil
}
