package rpc_test

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
)

const (
	testRealm = "monero-rpc"
	testNonce = "8b1f0e5d7c3a"
)

// digestServer answers with a Digest MD5 challenge until a request carries a
// valid Authorization header for user and pass, then hands it to next.
type digestServer struct {
	*httptest.Server
	requests atomic.Int32
}

func newDigestServer(t *testing.T, user, pass string, next http.HandlerFunc) *digestServer {
	t.Helper()

	ds := &digestServer{}
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.requests.Add(1)

		if !validDigest(r, user, pass) {
			w.Header().Add("WWW-Authenticate",
				fmt.Sprintf(`Digest qop="auth",algorithm=MD5,realm=%q,nonce=%q,stale=false`, testRealm, testNonce))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}))
	t.Cleanup(ds.Close)
	return ds
}

var authParamRe = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|([^,\s]+))`)

func validDigest(r *http.Request, user, pass string) bool {
	header := r.Header.Get("Authorization")
	if header == "" {
		return false
	}

	params := map[string]string{}
	for _, m := range authParamRe.FindAllStringSubmatch(header, -1) {
		params[m[1]] = m[2] + m[3]
	}
	if params["username"] != user || params["nonce"] != testNonce || params["uri"] != r.URL.RequestURI() {
		return false
	}

	ha1 := md5Hex(user + ":" + testRealm + ":" + pass)
	ha2 := md5Hex(r.Method + ":" + params["uri"])
	want := md5Hex(ha1 + ":" + testNonce + ":" + params["nc"] + ":" + params["cnonce"] + ":" + params["qop"] + ":" + ha2)
	return params["response"] == want
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// jsonHandler replies with a fixed status and body.
func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}
