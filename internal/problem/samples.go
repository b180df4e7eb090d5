package problem

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	httpclient "kat/internal/cli/http"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

// Getter is the judge transport used for downloads.
type Getter interface {
	Get(ctx context.Context, url string) (httpclient.ResponseInfo, error)
}

// FetchSamples downloads the sample archive at url and extracts it into
// testDir. A problem without samples (404) yields zero files and no error.
func FetchSamples(ctx context.Context, client Getter, url, testDir string) (int, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return 0, appErr.Wrapf(err, appErr.SampleFetchFailed, "download samples failed: %v", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		logger.Info(ctx, "problem has no sample tests", zap.String("url", url))
		return 0, nil
	default:
		return 0, appErr.Newf(appErr.SampleFetchFailed, "download samples failed, status code: %d", resp.StatusCode)
	}
	if err := os.MkdirAll(testDir, 0o755); err != nil {
		return 0, appErr.Wrapf(err, appErr.IOFailed, "create tests directory failed: %v", err)
	}
	return extractZip(resp.Body, testDir)
}

func extractZip(data []byte, dstDir string) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, appErr.Wrapf(err, appErr.SampleFetchFailed, "open samples archive failed: %v", err)
	}
	count := 0
	for _, f := range zr.File {
		if f.Name == "" {
			continue
		}
		cleanName := filepath.Clean(f.Name)
		if strings.HasPrefix(cleanName, "..") || filepath.IsAbs(cleanName) {
			return count, appErr.New(appErr.SampleFetchFailed).WithMessage("invalid archive entry path")
		}
		target := filepath.Join(dstDir, cleanName)
		if !strings.HasPrefix(target, filepath.Clean(dstDir)+string(filepath.Separator)) {
			return count, appErr.New(appErr.SampleFetchFailed).WithMessage("archive entry escape detected")
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return count, appErr.Wrapf(err, appErr.IOFailed, "create dir failed: %v", err)
			}
			continue
		}
		if err := writeEntry(f, target); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return appErr.Wrapf(err, appErr.IOFailed, "create parent dir failed: %v", err)
	}
	src, err := f.Open()
	if err != nil {
		return appErr.Wrapf(err, appErr.SampleFetchFailed, "open archive entry %s failed: %v", f.Name, err)
	}
	defer src.Close()
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return appErr.Wrapf(err, appErr.IOFailed, "create file failed: %v", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return appErr.Wrapf(err, appErr.IOFailed, "write file failed: %v", err)
	}
	return dst.Close()
}
