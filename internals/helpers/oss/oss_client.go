// file: internals/helpers/oss/oss_client.go
package oss

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"strconv"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"sipelanggaran_backend/internals/helpers/images"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// guard ringan di sisi uploader
var maxUploadSize = int64(5 * 1024 * 1024)

/* =======================================================================
   Service penyimpanan foto bukti pelanggaran
======================================================================= */

type Service struct {
	Bucket     *alioss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

func NewServiceFromEnv(prefix string) (*Service, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := alioss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &Service{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

// UploadViolationPhoto: normalisasi foto (resize + kompres JPEG sampai masuk
// target KB) lalu upload, kembalikan public URL. Error di sini adalah error
// per-file; pemanggil boleh lanjut ke foto berikutnya.
func (s *Service) UploadViolationPhoto(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file terlalu besar (maks %d bytes)", maxUploadSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(src); err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	targetKB := envInt("IMAGE_TARGET_KB", images.DefaultTargetKB)
	res, err := images.Normalize(buf.Bytes(), fh.Filename, targetKB)
	if err != nil {
		return "", fmt.Errorf("normalisasi gambar gagal: %w", err)
	}

	key := s.buildObjectKey()
	opts := []alioss.Option{
		alioss.WithContext(ctx),
		alioss.ContentType("image/jpeg"),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(res.Data), opts...); err != nil {
		return "", fmt.Errorf("upload gagal: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *Service) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := ExtractKeyFromPublicURL(publicURL)
	if err != nil {
		return fmt.Errorf("extract key: %w", err)
	}
	return s.Bucket.DeleteObject(key, alioss.WithContext(ctx))
}

/* =======================================================================
   Public URL & key utils
======================================================================= */

func (s *Service) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func ExtractKeyFromPublicURL(publicURL string) (string, error) {
	if strings.TrimSpace(publicURL) == "" {
		return "", fmt.Errorf("empty url")
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		base = strings.TrimRight(base, "/") + "/"
		if strings.HasPrefix(publicURL, base) {
			return strings.TrimPrefix(publicURL, base), nil
		}
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

// buildObjectKey: pelanggaran/<tanggal>/<uuid>.jpg — nama asli tidak dipakai
// supaya tidak bentrok dan tidak bocor informasi siswa di URL.
func (s *Service) buildObjectKey() string {
	ts := time.Now().Format("20060102")
	key := fmt.Sprintf("pelanggaran/%s/%s.jpg", ts, uuid.New().String())
	if s.Prefix != "" {
		key = s.Prefix + "/" + key
	}
	return key
}

func init() {
	if getEnv("ALI_OSS_ENDPOINT") == "" {
		log.Println("⚠️ ALI_OSS_ENDPOINT kosong — upload foto pelanggaran dinonaktifkan")
	}
}
