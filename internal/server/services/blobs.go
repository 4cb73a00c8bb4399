package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/common"
	sc "github.com/dmitrijs2005/fileledger/internal/server/config"
	"github.com/dmitrijs2005/fileledger/internal/server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// FileLookup is the part of the file-sync ledger BlobService needs.
type FileLookup interface {
	GetFile(ctx context.Context, fileID uint64) (models.FileRecord, error)
}

// BlobService hands out presigned URLs for file contents kept in an
// S3-compatible bucket. Contents are addressed by their hash, so the ledger
// record is all that is needed to find them.
type BlobService struct {
	files  FileLookup
	config *sc.Config
}

func NewBlobService(files FileLookup, config *sc.Config) *BlobService {
	return &BlobService{files: files, config: config}
}

// BlobKey is the object key holding the content with the given hash.
func BlobKey(hash string) string {
	return "blobs/" + hash
}

func (s *BlobService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns the object key and a presigned PUT URL for the
// content identified by hash.
func (s *BlobService) PresignUpload(ctx context.Context, hash string) (string, string, error) {
	if strings.TrimSpace(hash) == "" || strings.Contains(hash, "/") {
		return "", "", fmt.Errorf("hash %q: %w", hash, common.ErrorIncorrectMetadata)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := BlobKey(hash)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignDownload returns a presigned GET URL for the content of fileID.
func (s *BlobService) PresignDownload(ctx context.Context, fileID uint64) (string, error) {
	file, err := s.files.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	if !file.Exists() {
		return "", fmt.Errorf("file %d: %w", fileID, common.ErrorNotFound)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := BlobKey(file.FileHash)

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
