package guardian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

type testAuditConfig struct {
	enabled    bool
	exportPath string
	remoteURL  *url.URL
	prefix     string
}

func (c *testAuditConfig) IsAuditExportEnabled() bool { return c.enabled }

func (c *testAuditConfig) GetExportPath() string { return c.exportPath }

func (c *testAuditConfig) GetExportNodeName() string { return "guardian-node-0" }

func (c *testAuditConfig) GetRemoteExportURL() *url.URL { return c.remoteURL }

func (c *testAuditConfig) GetRemoteFilePrefix() string { return c.prefix }

func (c *testAuditConfig) GetMaxArchiveFileSizeInMB() uint { return 1 }

// failingWriter always fails on Write.
type failingWriter struct{}

func (w *failingWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("error on write")
}

func (w *failingWriter) Close() error {
	return nil
}

type failingBucket struct {
	Bucket
	errOnNewWriter bool
	errOnCopy      bool
	errOnExists    bool
	errOnWrite     bool
}

func (b failingBucket) NewWriter(ctx context.Context, key string, opts *blob.WriterOptions) (Writer, error) {
	if b.errOnNewWriter {
		return nil, errors.New("error on new writer")
	}
	if b.errOnWrite {
		return &failingWriter{}, nil
	}
	return b.Bucket.NewWriter(ctx, key, opts)
}

func (b failingBucket) Copy(ctx context.Context, dstKey, srcKey string, opts *blob.CopyOptions) error {
	if b.errOnCopy {
		return errors.New("error on copy")
	}
	return b.Bucket.Copy(ctx, dstKey, srcKey, opts)
}

func (b failingBucket) Exists(ctx context.Context, key string) (bool, error) {
	if b.errOnExists {
		return false, errors.New("error on exists")
	}
	return b.Bucket.Exists(ctx, key)
}

func TestArchiveWriteManager(t *testing.T) {
	t.Parallel()

	getBothBucket := func() (Bucket, *blob.Bucket) {
		memBucket := memblob.OpenBucket(nil)
		return NewBlobBucket(memBucket), memBucket
	}

	getBucket := func() Bucket {
		bucket, _ := getBothBucket()
		return bucket
	}

	objectName := "audit_archive.jsonl"
	maxSize := int64(256)

	auditLine := func(index int) string {
		return fmt.Sprintf(`{"queueName":"guardtest-%d","action":"warn"}`+"\n", index)
	}

	t.Run("RotatesPastMaxSize", func(t *testing.T) {
		t.Parallel()
		bucket, memBucket := getBothBucket()
		manager, err := NewArchiveWriteManager(bucket, objectName, maxSize)
		assert.Nil(t, err)
		defer manager.Close()

		for i := 0; i < 10; i++ {
			_, err = manager.Write(context.Background(), auditLine(i))
			assert.Nil(t, err)
		}
		// rotation happens in the background
		time.Sleep(50 * time.Millisecond)

		ctx := context.Background()
		iter := memBucket.List(nil)
		rotatedObjectFound := false
		regex := regexp.MustCompile(`audit_archive_[0-9]+\.jsonl`)
		for {
			obj, iterErr := iter.Next(ctx)
			if iterErr == io.EOF {
				break
			}
			assert.Nil(t, iterErr)
			if regex.MatchString(obj.Key) {
				rotatedObjectFound = true
				break
			}
		}
		assert.True(t, rotatedObjectFound)
	})

	t.Run("ExistingObjectSizePickedUp", func(t *testing.T) {
		t.Parallel()
		bucket := getBucket()
		ctx := context.Background()
		existingWriter, err := bucket.NewWriter(ctx, "existing.jsonl", nil)
		assert.Nil(t, err)
		_, err = existingWriter.Write([]byte("existing content"))
		assert.Nil(t, err)
		assert.Nil(t, existingWriter.Close())

		manager, err := NewArchiveWriteManager(bucket, "existing.jsonl", maxSize)
		assert.Nil(t, err)
		defer manager.Close()
		assert.Equal(t, int64(16), manager.currentSize)
	})

	t.Run("WriteError", func(t *testing.T) {
		t.Parallel()
		manager, err := NewArchiveWriteManager(failingBucket{Bucket: getBucket(), errOnWrite: true}, objectName, maxSize)
		assert.Nil(t, err)
		defer manager.Close()
		_, err = manager.Write(context.Background(), auditLine(0))
		assert.NotNil(t, err)
	})

	t.Run("NewWriterError", func(t *testing.T) {
		t.Parallel()
		manager, err := NewArchiveWriteManager(failingBucket{Bucket: getBucket(), errOnNewWriter: true}, objectName, maxSize)
		assert.Nil(t, err)
		defer manager.Close()
		_, err = manager.Write(context.Background(), auditLine(0))
		assert.NotNil(t, err)
	})

	t.Run("RotateErrorDoesNotFailWrites", func(t *testing.T) {
		t.Parallel()
		manager, err := NewArchiveWriteManager(failingBucket{Bucket: getBucket(), errOnCopy: true}, objectName, maxSize)
		assert.Nil(t, err)
		defer manager.Close()
		for i := 0; i < 10; i++ {
			_, err = manager.Write(context.Background(), auditLine(i))
			assert.Nil(t, err)
		}
	})

	t.Run("ExistsError", func(t *testing.T) {
		t.Parallel()
		_, err := NewArchiveWriteManager(failingBucket{Bucket: getBucket(), errOnExists: true}, objectName, maxSize)
		assert.NotNil(t, err)
	})
}

func TestNewAuditTrailDisabled(t *testing.T) {
	trail, err := NewAuditTrail(&testAuditConfig{enabled: false})
	assert.Nil(t, err)
	// a disabled trail swallows records without touching storage
	trail.Record(AuditRecord{QueueName: "guardtest-events", Action: "warn"})
	trail.Close()
}

func TestAuditTrailLocalExport(t *testing.T) {
	dir := t.TempDir()
	trail, err := NewAuditTrail(&testAuditConfig{enabled: true, exportPath: dir})
	assert.Nil(t, err)
	trail.Record(AuditRecord{
		Timestamp:    time.Now(),
		QueueName:    "guardtest-events",
		Action:       "delete",
		ObservedSize: 31,
	})
	trail.Close()

	matches, err := filepath.Glob(filepath.Join(dir, "local_guardian-node-0_*.jsonl"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(matches))
	content, err := os.ReadFile(matches[0])
	assert.Nil(t, err)
	assert.Contains(t, string(content), `"queueName":"guardtest-events"`)
	assert.Contains(t, string(content), `"action":"delete"`)
	assert.True(t, strings.HasSuffix(string(content), "\n"))
}

func TestAuditTrailRemoteExport(t *testing.T) {
	localDir := t.TempDir()
	remoteDir := t.TempDir()
	remoteURL, _ := url.Parse("file://" + remoteDir + "?no_tmp_dir=1")
	trail, err := NewAuditTrail(&testAuditConfig{enabled: true, exportPath: localDir, remoteURL: remoteURL, prefix: "audit"})
	assert.Nil(t, err)
	trail.Record(AuditRecord{QueueName: "guardtest-events", Action: "warn", ObservedSize: 25, RecipientCount: 2})
	trail.Close()

	matches, err := filepath.Glob(filepath.Join(remoteDir, "audit", "guardian-node-0_*.jsonl"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(matches))
}

func TestNewAuditTrailLocalOpenError(t *testing.T) {
	_, err := NewAuditTrail(&testAuditConfig{enabled: true, exportPath: "/definitely/not/here"})
	assert.NotNil(t, err)
}
