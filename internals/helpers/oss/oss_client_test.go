package oss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLRoundTrip(t *testing.T) {
	t.Setenv("ALI_OSS_PUBLIC_BASE", "")

	svc := &Service{Endpoint: "https://oss-ap-southeast-5.aliyuncs.com", BucketName: "sipelanggaran"}
	url := svc.PublicURL("pelanggaran/20260830/abc.jpg")
	assert.Equal(t, "https://sipelanggaran.oss-ap-southeast-5.aliyuncs.com/pelanggaran/20260830/abc.jpg", url)

	key, err := ExtractKeyFromPublicURL(url)
	require.NoError(t, err)
	assert.Equal(t, "pelanggaran/20260830/abc.jpg", key)
}

func TestExtractKeyHonorsPublicBase(t *testing.T) {
	t.Setenv("ALI_OSS_PUBLIC_BASE", "https://cdn.sekolah.sch.id/")

	key, err := ExtractKeyFromPublicURL("https://cdn.sekolah.sch.id/pelanggaran/20260830/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "pelanggaran/20260830/abc.jpg", key)
}

func TestExtractKeyRejectsBadURL(t *testing.T) {
	t.Setenv("ALI_OSS_PUBLIC_BASE", "")

	_, err := ExtractKeyFromPublicURL("")
	assert.Error(t, err)

	_, err = ExtractKeyFromPublicURL("https://host-tanpa-path")
	assert.Error(t, err)
}
