package s3

import (
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/sirupsen/logrus"
)

// ItfS3 archives uploaded participant logs.
type ItfS3 interface {
	UploadFile(file *multipart.FileHeader, key string) (string, error)
	PresignUrl(key string) (string, error)
}

type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Prefix          string
}

type s3Client struct {
	client     *s3.S3
	session    *session.Session
	bucketName string
	prefix     string
}

func New(opts Options) (ItfS3, error) {
	if opts.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	sess, err := newSession(opts)
	if err != nil {
		return nil, err
	}

	return &s3Client{
		client:     s3.New(sess),
		session:    sess,
		bucketName: opts.BucketName,
		prefix:     strings.Trim(opts.Prefix, "/"),
	}, nil
}

func (s *s3Client) UploadFile(file *multipart.FileHeader, key string) (string, error) {
	uploader := s3manager.NewUploader(s.session)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func(src multipart.File) {
		if err := src.Close(); err != nil {
			logrus.Warn("Failed to close uploaded file")
		}
	}(src)

	objectKey := s.objectKey(key, file.Filename)
	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String("text/plain"),
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

func (s *s3Client) PresignUrl(key string) (string, error) {
	_, err := s.client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}

	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})

	return req.Presign(15 * time.Minute)
}

func (s *s3Client) objectKey(key, fileName string) string {
	name := fmt.Sprintf("%s-%s", key, path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func newSession(opts Options) (*session.Session, error) {
	return session.NewSession(&aws.Config{
		Region: aws.String(opts.Region),
		Credentials: credentials.NewStaticCredentials(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		),
	})
}
