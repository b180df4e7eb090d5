package poller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpclient "kat/internal/cli/http"
	"kat/internal/testutil"
	appErr "kat/pkg/errors"
)

const acceptedPage = `<table id="judge_table"><tr data-submission-id="42">
<td data-type="status"><span>Accepted</span></td>
<td data-type="cpu">0.02&nbsp;s</td>
<td data-type="testcases"><div class="horizontal_item">2/2</div></td>
</tr>
<tr class="testcases-row"><td>
<i title="Test case 1/2: Accepted"></i><i title="Test case 2/2: Accepted"></i>
</td></tr></table>`

func newClient(t *testing.T) *httpclient.Client {
	t.Helper()
	client, err := httpclient.New(httpclient.Options{})
	testutil.MustNoError(t, err)
	return client
}

func TestFetch(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = io.WriteString(w, acceptedPage)
	}))
	defer server.Close()

	snap, err := New(newClient(t)).Fetch(context.Background(), server.URL+"/submissions/42")
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, hits, 1)
	testutil.AssertEqual(t, snap.SubmissionID, "42")
	testutil.AssertEqual(t, snap.RawStatus, "Accepted")
	testutil.AssertEqual(t, snap.CPUTime, "0.02 s")
	testutil.AssertEqual(t, len(snap.Tests), 2)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, acceptedPage)
	}))
	defer server.Close()

	_, err := New(newClient(t)).Fetch(context.Background(), server.URL)
	testutil.AssertCode(t, err, appErr.StatusFetchFailed)
}

func TestFetchUnparseablePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	}))
	defer server.Close()

	_, err := New(newClient(t)).Fetch(context.Background(), server.URL)
	testutil.AssertCode(t, err, appErr.StatusParseFailed)
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(newClient(t)).Fetch(context.Background(), url)
	testutil.AssertCode(t, err, appErr.StatusFetchFailed)
}
