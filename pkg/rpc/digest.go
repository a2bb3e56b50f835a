package rpc

import (
	"fmt"
	"net/http"

	"github.com/icholy/digest"
)

// answerChallenge builds the Authorization header value answering the first
// supported Digest challenge (RFC 7616) in the WWW-Authenticate headers of a
// 401 reply. Every answer uses a fresh client nonce.
func answerChallenge(header http.Header, creds Credentials, method, uri string) (string, error) {
	return answerChallengeWith(header, creds, method, uri, "")
}

// answerChallengeWith is answerChallenge with a fixed client nonce. An empty
// cnonce is generated by the digest package.
func answerChallengeWith(header http.Header, creds Credentials, method, uri, cnonce string) (string, error) {
	chal, err := digest.FindChallenge(header)
	if err != nil {
		return "", fmt.Errorf("no supported digest challenge offered: %w", err)
	}

	cred, err := digest.Digest(chal, digest.Options{
		Method:   method,
		URI:      uri,
		Username: creds.Username,
		Password: creds.Password,
		Count:    1,
		Cnonce:   cnonce,
	})
	if err != nil {
		return "", fmt.Errorf("answer digest challenge: %w", err)
	}
	return cred.String(), nil
}
