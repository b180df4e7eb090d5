package problem

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	httpclient "kat/internal/cli/http"
	"kat/internal/testutil"
	appErr "kat/pkg/errors"

	"github.com/klauspost/compress/zip"
)

type stubGetter struct {
	resp httpclient.ResponseInfo
	err  error
	urls []string
}

func (s *stubGetter) Get(_ context.Context, url string) (httpclient.ResponseInfo, error) {
	s.urls = append(s.urls, url)
	return s.resp, s.err
}

type stubCatalog struct {
	exists bool
	err    error
}

func (s stubCatalog) ProblemExists(context.Context, string) (bool, error) {
	return s.exists, s.err
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		testutil.MustNoError(t, err)
		_, err = w.Write([]byte(content))
		testutil.MustNoError(t, err)
	}
	testutil.MustNoError(t, zw.Close())
	return buf.Bytes()
}

func TestFetchSamples(t *testing.T) {
	archive := buildZip(t, map[string]string{"1.in": "3\n", "1.ans": "3\n", "2.in": "1\n", "2.ans": "1\n"})
	getter := &stubGetter{resp: httpclient.ResponseInfo{StatusCode: http.StatusOK, Body: archive}}
	testDir := filepath.Join(t.TempDir(), "tests")

	n, err := FetchSamples(context.Background(), getter, "https://judge/samples.zip", testDir)
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, n, 4)
	data, err := os.ReadFile(filepath.Join(testDir, "2.ans"))
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, string(data), "1\n")
}

func TestFetchSamplesNotFound(t *testing.T) {
	getter := &stubGetter{resp: httpclient.ResponseInfo{StatusCode: http.StatusNotFound}}
	testDir := filepath.Join(t.TempDir(), "tests")

	n, err := FetchSamples(context.Background(), getter, "https://judge/samples.zip", testDir)
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, n, 0)
	_, statErr := os.Stat(testDir)
	testutil.AssertTrue(t, os.IsNotExist(statErr), "tests dir should not be created")
}

func TestFetchSamplesErrors(t *testing.T) {
	getter := &stubGetter{resp: httpclient.ResponseInfo{StatusCode: http.StatusBadGateway}}
	_, err := FetchSamples(context.Background(), getter, "u", t.TempDir())
	testutil.AssertCode(t, err, appErr.SampleFetchFailed)

	getter = &stubGetter{resp: httpclient.ResponseInfo{StatusCode: http.StatusOK, Body: []byte("not a zip")}}
	_, err = FetchSamples(context.Background(), getter, "u", t.TempDir())
	testutil.AssertCode(t, err, appErr.SampleFetchFailed)

	evil := buildZip(t, map[string]string{"../escape.in": "x"})
	getter = &stubGetter{resp: httpclient.ResponseInfo{StatusCode: http.StatusOK, Body: evil}}
	_, err = FetchSamples(context.Background(), getter, "u", t.TempDir())
	testutil.AssertCode(t, err, appErr.SampleFetchFailed)
}

func TestSetup(t *testing.T) {
	archive := buildZip(t, map[string]string{"1.in": "3\n", "1.ans": "3\n"})
	getter := &stubGetter{resp: httpclient.ResponseInfo{StatusCode: http.StatusOK, Body: archive}}
	tpl := testutil.WriteFile(t, t.TempDir(), "template.py", "print(input())\n")
	parent := t.TempDir()
	req := SetupRequest{ProblemID: "hello", ParentDir: parent, TestDir: "tests", SamplesURL: "https://judge/samples.zip", TemplatePath: tpl}

	res, err := Setup(context.Background(), stubCatalog{exists: true}, getter, req)
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, res.Dir, filepath.Join(parent, "hello"))
	testutil.AssertEqual(t, res.Samples, 2)
	testutil.AssertEqual(t, res.SolutionPath, filepath.Join(parent, "hello", "hello.py"))
	testutil.AssertDeepEqual(t, getter.urls, []string{"https://judge/samples.zip"})

	_, err = Setup(context.Background(), stubCatalog{exists: true}, getter, req)
	testutil.AssertCode(t, err, appErr.ProblemAlreadyExists)
}

func TestSetupMissingProblem(t *testing.T) {
	parent := t.TempDir()
	req := SetupRequest{ProblemID: "nope", ParentDir: parent, TestDir: "tests", SamplesURL: "u"}

	_, err := Setup(context.Background(), stubCatalog{exists: false}, &stubGetter{}, req)
	testutil.AssertCode(t, err, appErr.ProblemNotFound)
	_, statErr := os.Stat(filepath.Join(parent, "nope"))
	testutil.AssertTrue(t, os.IsNotExist(statErr), "no directory should be left behind")
}
