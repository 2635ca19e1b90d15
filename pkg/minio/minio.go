package minio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Error messages
const (
	MsgFailedInitiateClient string = "failed to initiate MinIO client: %w"
	MsgFailedUpload         string = "failed to upload object: %w"
	MsgFailedCreateBucket   string = "failed to create bucket: %w"
)

const defaultBucketName = "deploy-reports"

func init() {
	fsMinIO := pflag.NewFlagSet("minio", pflag.ExitOnError)
	fsMinIO.Bool("minio-enabled", false, "publish the generated report to MinIO")
	fsMinIO.String("minio-host", "minio.minio.svc.cluster.local:9000", "MinIO host")
	fsMinIO.String("minio-bucket", defaultBucketName, "MinIO bucket name")

	viper.BindEnv("minio-access-key", "MINIO_SERVER_USER")
	viper.BindEnv("minio-secret-key", "MINIO_SERVER_PASSWORD")

	pflag.CommandLine.AddFlagSet(fsMinIO)
	if err := viper.BindPFlags(fsMinIO); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// NewMinIOClient returns the MinIO client
func NewMinIOClient(host string, log *logrus.Logger) (*minio.Client, error) {
	accessKeyID := viper.GetString("minio-access-key")
	secretAccessKey := viper.GetString("minio-secret-key")
	useSSL := false

	log.Debug("initializing MinIO client")
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgFailedInitiateClient, err)
	}
	log.Debug("MinIO client initialized")
	return client, nil
}

// Storage publishes rendered reports to object storage so they can be
// shared beyond the operator's machine.
type Storage struct {
	client *minio.Client
	bucket string
	log    *logrus.Logger
}

var (
	instance *Storage
	once     sync.Once
)

// NewStorage creates the storage instance and returns it
func NewStorage(log *logrus.Logger) (*Storage, error) {
	var err error
	once.Do(func() {
		var client *minio.Client
		client, err = NewMinIOClient(viper.GetString("minio-host"), log)
		if err != nil {
			return
		}
		instance = &Storage{
			client: client,
			bucket: viper.GetString("minio-bucket"),
			log:    log,
		}
	})
	return instance, err
}

// PublishReport stores one rendered report under a per-namespace,
// timestamped object name.
func (s *Storage) PublishReport(ctx context.Context, namespace string, html []byte) error {
	if err := s.CreateBucketIfNotExists(ctx, s.bucket); err != nil {
		return err
	}
	objectName := fmt.Sprintf("%s/report-%s.html", namespace, time.Now().UTC().Format("20060102-150405"))
	return s.Save(ctx, s.bucket, objectName, html)
}

// Save stores @data into the @bucketName with the given @objectName
func (s *Storage) Save(ctx context.Context, bucketName, objectName string, data []byte) error {
	r := bytes.NewReader(data)
	info, err := s.client.PutObject(
		ctx,
		bucketName,
		objectName,
		r,
		r.Size(),
		minio.PutObjectOptions{ContentType: "text/html"},
	)
	if err != nil {
		return fmt.Errorf(MsgFailedUpload, err)
	}
	s.log.WithFields(logrus.Fields{
		"objectName": objectName,
		"size":       info.Size,
	}).Debug("uploaded successfully")
	return nil
}

// CreateBucketIfNotExists creates a new bucket with the given @bucketName if it
// does not exist
func (s *Storage) CreateBucketIfNotExists(ctx context.Context, bucketName string) error {
	isExist, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf(MsgFailedCreateBucket, err)
	}
	if isExist {
		return nil
	}

	err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		return fmt.Errorf(MsgFailedCreateBucket, err)
	}
	s.log.WithFields(logrus.Fields{
		"bucketName": bucketName,
	}).Debug("created successfully")

	return nil
}
