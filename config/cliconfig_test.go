package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

const (
	watchedInitialContent = `[guardian]
	warn-queue-size=5000
	`
	watchedDifferentContent = `[guardian]
	warn-queue-size=100
	`
)

func writeToFile(filePath, content string) (err error) {
	err = os.WriteFile(filePath, []byte(content), 0644)
	return err
}

func TestCLIConfigIsMigrationEnabled(t *testing.T) {
	cliConfig := &CLIConfig{}
	assert.False(t, cliConfig.IsMigrationEnabled())
	cliConfig.MigrationSource = "file:///migrations/"
	assert.True(t, cliConfig.IsMigrationEnabled())
}

func TestCLIConfigPathChangeNotification(t *testing.T) {
	t.Run("NotifiedOnFileChange", func(t *testing.T) {
		watchedPath := filepath.Join(t.TempDir(), ConfigFilename)
		err := writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		cliConfig := &CLIConfig{ConfigPath: watchedPath}
		var wg sync.WaitGroup
		wg.Add(1)
		cliConfig.NotifyOnConfigFileChange(func() {
			wg.Done()
		})
		defer cliConfig.StopWatcher()
		assert.True(t, cliConfig.IsConfigWatcherStarted())
		time.Sleep(5 * time.Millisecond)
		err = writeToFile(watchedPath, watchedDifferentContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		wg.Wait()
	})
	t.Run("NoNotifyOnFileContentUnchanged", func(t *testing.T) {
		watchedPath := filepath.Join(t.TempDir(), ConfigFilename)
		err := writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		cliConfig := &CLIConfig{ConfigPath: watchedPath}
		var wg sync.WaitGroup
		cliConfig.NotifyOnConfigFileChange(func() {
			wg.Done()
		})
		defer cliConfig.StopWatcher()
		assert.True(t, cliConfig.IsConfigWatcherStarted())
		time.Sleep(1 * time.Millisecond)
		err = writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		time.Sleep(3 * time.Millisecond)
		wg.Wait()
	})
	t.Run("NoNotifyOnFileTruncation", func(t *testing.T) {
		var buf bytes.Buffer
		oldLogger := log.Logger
		log.Logger = log.Output(&buf)
		defer func() {
			log.Logger = oldLogger
		}()
		watchedPath := filepath.Join(t.TempDir(), ConfigFilename)
		err := writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		cliConfig := &CLIConfig{ConfigPath: watchedPath}
		var wg sync.WaitGroup
		cliConfig.NotifyOnConfigFileChange(func() {
			wg.Done()
		})
		defer cliConfig.StopWatcher()
		assert.True(t, cliConfig.IsConfigWatcherStarted())
		time.Sleep(1 * time.Millisecond)
		err = writeToFile(watchedPath, "")
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		time.Sleep(3 * time.Millisecond)
		wg.Wait()
		assert.Contains(t, buf.String(), "truncation of config file not expected")
		assert.Contains(t, buf.String(), errTruncatedConfigFile.Error())
	})
	t.Run("WorkerStopsOnFileRemoval", func(t *testing.T) {
		watchedPath := filepath.Join(t.TempDir(), ConfigFilename)
		err := writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		cliConfig := &CLIConfig{ConfigPath: watchedPath}
		var wg sync.WaitGroup
		cliConfig.NotifyOnConfigFileChange(func() {
			wg.Done()
		})
		defer cliConfig.StopWatcher()
		assert.True(t, cliConfig.IsConfigWatcherStarted())
		time.Sleep(1 * time.Millisecond)
		err = os.Remove(watchedPath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not remove file")
		}
		time.Sleep(3 * time.Millisecond)
		wg.Wait()
	})
	t.Run("NoFilePathTest", func(t *testing.T) {
		var buf bytes.Buffer
		oldLogger := log.Logger
		log.Logger = log.Output(&buf)
		oldDir, _ := os.Getwd()
		os.Chdir(t.TempDir())
		defer func() {
			os.Chdir(oldDir)
			log.Logger = oldLogger
		}()
		cliConfig := &CLIConfig{}
		cliConfig.NotifyOnConfigFileChange(func() {
			t.FailNow()
		})
		defer cliConfig.StopWatcher()
		time.Sleep(1 * time.Millisecond)
		assert.Contains(t, buf.String(), errNoFileToWatch.Error())
		assert.Contains(t, buf.String(), "could not find any file to watch")
	})
	t.Run("HashErrorOnStart", func(t *testing.T) {
		var buf bytes.Buffer
		oldLogger := log.Logger
		log.Logger = log.Output(&buf)
		defer func() {
			log.Logger = oldLogger
		}()
		expectedErr := errors.New("hash error from test")
		oldGetHash := getFileHash
		getFileHash = func(filePath string) (string, error) {
			return "", expectedErr
		}
		defer func() { getFileHash = oldGetHash }()
		watchedPath := filepath.Join(t.TempDir(), ConfigFilename)
		err := writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		cliConfig := &CLIConfig{ConfigPath: watchedPath}
		cliConfig.NotifyOnConfigFileChange(func() {
			t.FailNow()
		})
		defer cliConfig.StopWatcher()
		assert.True(t, cliConfig.IsConfigWatcherStarted())
		time.Sleep(1 * time.Millisecond)
		assert.Contains(t, buf.String(), expectedErr.Error())
		assert.Contains(t, buf.String(), "could not generate original config file hash")
	})
	t.Run("WatcherCreationError", func(t *testing.T) {
		oldCreateWatcher := createNewWatcher
		var buf bytes.Buffer
		oldLogger := log.Logger
		log.Logger = log.Output(&buf)
		defer func() {
			createNewWatcher = oldCreateWatcher
			log.Logger = oldLogger
		}()
		expectedErr := errors.New("create watcher error from test")
		createNewWatcher = func() (*fsnotify.Watcher, error) {
			return nil, expectedErr
		}
		watchedPath := filepath.Join(t.TempDir(), ConfigFilename)
		err := writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		cliConfig := &CLIConfig{ConfigPath: watchedPath}
		cliConfig.NotifyOnConfigFileChange(func() {
			t.FailNow()
		})
		assert.True(t, cliConfig.IsConfigWatcherStarted())
		time.Sleep(1 * time.Millisecond)
		assert.Contains(t, buf.String(), expectedErr.Error())
		assert.Contains(t, buf.String(), "could not setup watcher")
	})
	t.Run("PassErrorToWatcher", func(t *testing.T) {
		oldCreateWatcher := createNewWatcher
		var buf bytes.Buffer
		oldLogger := log.Logger
		log.Logger = log.Output(&buf)
		defer func() {
			createNewWatcher = oldCreateWatcher
			log.Logger = oldLogger
		}()
		expectedErr := errors.New("manual watch error from test")
		watcher, _ := fsnotify.NewWatcher()
		createNewWatcher = func() (*fsnotify.Watcher, error) {
			return watcher, nil
		}
		watchedPath := filepath.Join(t.TempDir(), ConfigFilename)
		err := writeToFile(watchedPath, watchedInitialContent)
		if err != nil {
			log.Fatal().Err(err).Msg("could not write to file")
		}
		cliConfig := &CLIConfig{ConfigPath: watchedPath}
		cliConfig.NotifyOnConfigFileChange(func() {
			t.FailNow()
		})
		defer cliConfig.StopWatcher()
		assert.True(t, cliConfig.IsConfigWatcherStarted())
		time.Sleep(1 * time.Millisecond)
		watcher.Errors <- expectedErr
		time.Sleep(1 * time.Millisecond)
		assert.Contains(t, buf.String(), expectedErr.Error())
		assert.Contains(t, buf.String(), "watcher error")
	})
	t.Run("NoWatchDueToConfig", func(t *testing.T) {
		cliConfig := &CLIConfig{DoNotWatchConfigChange: true}
		cliConfig.NotifyOnConfigFileChange(func() {
			t.FailNow()
		})
		assert.False(t, cliConfig.IsConfigWatcherStarted())
	})
	t.Run("GetFileHashOpenError", func(t *testing.T) {
		_, err := getFileHash(filepath.Join(t.TempDir(), "no-such-file"))
		assert.NotNil(t, err)
	})
}
