package storage

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/minio/highwayhash"
)

const DownloadPath = "/api/files/download"

// Signer issues and checks time-limited download links. A link carries the
// blob name, a unix expiry and a HighwayHash-256 tag over both.
type Signer struct {
	key     []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewSigner(secret, publicBaseURL string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing key is empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	key := sha256.Sum256([]byte(secret))
	return &Signer{
		key:     key[:],
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func (s *Signer) TTL() time.Duration {
	return s.ttl
}

func (s *Signer) sign(blob string, expires int64) (string, error) {
	h, err := highwayhash.New(s.key)
	if err != nil {
		return "", err
	}
	h.Write([]byte(blob))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// URL returns a download link for blob valid for the signer TTL.
func (s *Signer) URL(blob string) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	sig, err := s.sign(blob, expires)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("blob", blob)
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", sig)
	return s.baseURL + DownloadPath + "?" + q.Encode(), nil
}

// Verify checks a link's signature and expiry.
func (s *Signer) Verify(blob, expires, sig string) error {
	if blob == "" || expires == "" || sig == "" {
		return fmt.Errorf("incomplete download link")
	}
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expiry %q", expires)
	}
	want, err := s.sign(blob, exp)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(sig)) != 1 {
		return fmt.Errorf("signature mismatch")
	}
	if s.now().Unix() > exp {
		return fmt.Errorf("download link expired")
	}
	return nil
}
