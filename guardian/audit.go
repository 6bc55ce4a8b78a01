package guardian

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/newscred/queue-guardian/config"
	"github.com/rs/zerolog/log"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// AuditRecord is one enforcement action appended to the audit archive
type AuditRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	QueueName      string    `json:"queueName"`
	Action         string    `json:"action"`
	ObservedSize   uint      `json:"observedSize"`
	OwnerUsername  string    `json:"ownerUsername,omitempty"`
	RecipientCount int       `json:"recipientCount,omitempty"`
}

// Bucket defines the blob storage operations the audit archive needs.
type Bucket interface {
	NewReader(ctx context.Context, key string, opts *blob.ReaderOptions) (Reader, error)
	NewWriter(ctx context.Context, key string, opts *blob.WriterOptions) (Writer, error)
	Copy(ctx context.Context, dstKey, srcKey string, opts *blob.CopyOptions) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Reader defines the interface for reading from blob storage objects.
type Reader interface {
	io.ReadCloser
	Size() int64
}

// Writer defines the interface for writing to blob storage objects.
type Writer interface {
	io.WriteCloser
}

// blobBucket implements the Bucket interface using "gocloud.dev/blob".
type blobBucket struct {
	*blob.Bucket
}

func (b *blobBucket) NewReader(ctx context.Context, key string, opts *blob.ReaderOptions) (Reader, error) {
	return b.Bucket.NewReader(ctx, key, opts)
}

func (b *blobBucket) NewWriter(ctx context.Context, key string, opts *blob.WriterOptions) (Writer, error) {
	return b.Bucket.NewWriter(ctx, key, opts)
}

// NewBlobBucket creates a new Bucket using "gocloud.dev/blob".
func NewBlobBucket(bucket *blob.Bucket) Bucket {
	return &blobBucket{bucket}
}

// ArchiveWriteManager appends to a single archive object and rotates it once
// the configured size is exceeded.
type ArchiveWriteManager struct {
	bucket      Bucket
	objectName  string
	maxSize     int64
	currentSize int64
	mu          sync.Mutex
	writer      Writer
}

// NewArchiveWriteManager creates an archive manager over the given bucket object
func NewArchiveWriteManager(bucket Bucket, objectName string, maxSize int64) (*ArchiveWriteManager, error) {
	manager := &ArchiveWriteManager{
		bucket:     bucket,
		objectName: objectName,
		maxSize:    maxSize,
	}
	ctx := context.Background()
	reader, err := bucket.NewReader(ctx, objectName, nil)
	exists, existsErr := bucket.Exists(ctx, objectName)
	if existsErr != nil {
		return nil, fmt.Errorf("failed to check if audit object exists: %w", existsErr)
	}
	if err != nil && exists {
		return nil, fmt.Errorf("failed to create audit object reader: %w", err)
	}
	if err == nil {
		defer reader.Close()
		manager.currentSize = reader.Size()
	}
	return manager, nil
}

// Write appends the given JSONL line to the current object, rotating when the
// maximum size is exceeded.
func (manager *ArchiveWriteManager) Write(ctx context.Context, jsonStr string) (int, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.writer == nil {
		var err error
		manager.writer, err = manager.bucket.NewWriter(ctx, manager.objectName, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to create audit object writer: %w", err)
		}
		manager.currentSize = 0
	}

	n, err := manager.writer.Write([]byte(jsonStr))
	if err != nil {
		return n, fmt.Errorf("failed to write to audit object: %w", err)
	}
	manager.currentSize += int64(n)

	if manager.currentSize >= manager.maxSize {
		go manager.rotateInBackground(ctx)
	}

	return n, nil
}

func (manager *ArchiveWriteManager) rotateInBackground(ctx context.Context) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.writer != nil {
		if err := manager.writer.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close audit object writer")
			return
		}
		manager.writer = nil
	}

	if err := manager.rotate(ctx); err != nil {
		log.Error().Err(err).Msg("failed to rotate audit object")
	}
}

func (manager *ArchiveWriteManager) rotate(ctx context.Context) error {
	fileExt := filepath.Ext(manager.objectName)
	baseName := manager.objectName[0 : len(manager.objectName)-len(fileExt)]
	// timestamp goes before the extension so rotated objects sort naturally
	newObjectName := fmt.Sprintf("%s_%d%s", baseName, time.Now().Unix(), fileExt)
	if err := manager.bucket.Copy(ctx, newObjectName, manager.objectName, nil); err != nil {
		return fmt.Errorf("failed to copy audit object: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (manager *ArchiveWriteManager) Close() error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.writer != nil {
		return manager.writer.Close()
	}
	return nil
}

// AuditTrail writes enforcement actions to a local archive and optionally
// mirrors them to a remote one. A zero value trail discards everything, which
// backs the audit-disabled mode.
type AuditTrail struct {
	localManager  *ArchiveWriteManager
	remoteManager *ArchiveWriteManager
}

func buildRemoteAuditObjectName(auditConfig config.AuditExportConfig) string {
	now := time.Now().UTC().Format("2006_01_02T15_04_05Z")
	objectName := fmt.Sprintf("%s_%s.jsonl", auditConfig.GetExportNodeName(), now)
	if len(auditConfig.GetRemoteFilePrefix()) > 0 {
		objectName = fmt.Sprintf("%s/%s", auditConfig.GetRemoteFilePrefix(), objectName)
	}
	return objectName
}

var (
	initLocalAuditManager = func(auditConfig config.AuditExportConfig) (*ArchiveWriteManager, error) {
		now := time.Now().UTC().Format("2006_01_02T15_04_05Z")
		dirPath := fmt.Sprintf("file://%s", auditConfig.GetExportPath())
		objectName := fmt.Sprintf("local_%s_%s.jsonl", auditConfig.GetExportNodeName(), now)
		fileBucket, err := blob.OpenBucket(context.Background(), dirPath+"?no_tmp_dir=1")
		if err != nil {
			return nil, fmt.Errorf("failed to open local audit archive: %w", err)
		}
		return NewArchiveWriteManager(NewBlobBucket(fileBucket),
			objectName, int64(auditConfig.GetMaxArchiveFileSizeInMB())*1024*1024)
	}

	initRemoteAuditManager = func(auditConfig config.AuditExportConfig) (*ArchiveWriteManager, error) {
		if auditConfig.GetRemoteExportURL() == nil {
			return nil, nil
		}
		bucket, err := blob.OpenBucket(context.Background(), auditConfig.GetRemoteExportURL().String())
		if err != nil {
			return nil, fmt.Errorf("failed to open remote audit bucket: %w", err)
		}
		return NewArchiveWriteManager(NewBlobBucket(bucket),
			buildRemoteAuditObjectName(auditConfig), int64(auditConfig.GetMaxArchiveFileSizeInMB())*1024*1024)
	}
)

// NewAuditTrail creates the audit trail; a disabled configuration yields a
// discarding trail without touching the filesystem
func NewAuditTrail(auditConfig config.AuditExportConfig) (*AuditTrail, error) {
	if !auditConfig.IsAuditExportEnabled() {
		return &AuditTrail{}, nil
	}
	localManager, err := initLocalAuditManager(auditConfig)
	if err != nil {
		return nil, err
	}
	remoteManager, err := initRemoteAuditManager(auditConfig)
	if err != nil {
		return nil, err
	}
	return &AuditTrail{localManager: localManager, remoteManager: remoteManager}, nil
}

// Record appends one enforcement action; failures are logged and swallowed so
// the enforcement cycle is never blocked on the archive
func (trail *AuditTrail) Record(record AuditRecord) {
	if trail.localManager == nil {
		return
	}
	jsonData, err := json.Marshal(record)
	if err != nil {
		log.Error().Err(err).Str("queueName", record.QueueName).Msg("failed to marshal audit record")
		return
	}
	jsonStr := string(jsonData) + "\n"
	if _, err = trail.localManager.Write(context.Background(), jsonStr); err != nil {
		log.Error().Err(err).Str("queueName", record.QueueName).Msg("failed to write audit record to local archive")
	}
	if trail.remoteManager != nil {
		if _, err = trail.remoteManager.Write(context.Background(), jsonStr); err != nil {
			log.Error().Err(err).Str("queueName", record.QueueName).Msg("failed to write audit record to remote archive")
		}
	}
}

// Close closes the underlying archive managers.
func (trail *AuditTrail) Close() {
	if trail.remoteManager != nil {
		if err := trail.remoteManager.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close remote audit archive manager")
		}
	}
	if trail.localManager != nil {
		if err := trail.localManager.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close local audit archive manager")
		}
	}
}
