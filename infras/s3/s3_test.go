package s3

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"rental/infras/otel/mocks"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectClient struct {
	put    *awsS3.PutObjectInput
	delete *awsS3.DeleteObjectInput
	err    error
}

func (f *fakeObjectClient) PutObject(_ context.Context, params *awsS3.PutObjectInput, _ ...func(*awsS3.Options)) (*awsS3.PutObjectOutput, error) {
	f.put = params

	return &awsS3.PutObjectOutput{}, f.err
}

func (f *fakeObjectClient) DeleteObject(_ context.Context, params *awsS3.DeleteObjectInput, _ ...func(*awsS3.Options)) (*awsS3.DeleteObjectOutput, error) {
	f.delete = params

	return &awsS3.DeleteObjectOutput{}, f.err
}

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func TestS3_UploadFile(t *testing.T) {
	client := &fakeObjectClient{}
	svc := newS3(client, "rental", "https://cdn.example.com/", mocks.NewOtel())

	header := &multipart.FileHeader{Header: textproto.MIMEHeader{"Content-Type": {"image/png"}}}
	file := memoryFile{bytes.NewReader([]byte("png-bytes"))}

	url, err := svc.UploadFile(context.Background(), "inspections", file, header, "photo.png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/inspections/photo.png", url)
	assert.Equal(t, "rental", aws.ToString(client.put.Bucket))
	assert.Equal(t, "inspections/photo.png", aws.ToString(client.put.Key))
	assert.Equal(t, "image/png", aws.ToString(client.put.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(client.put.ContentLength))
}

func TestS3_UploadFile_Error(t *testing.T) {
	svc := newS3(&fakeObjectClient{err: errors.New("access denied")}, "rental", "https://cdn.example.com", mocks.NewOtel())

	header := &multipart.FileHeader{Header: textproto.MIMEHeader{}}

	_, err := svc.UploadFile(context.Background(), "cars", memoryFile{bytes.NewReader(nil)}, header, "car.jpg")
	assert.Error(t, err)
}

func TestS3_DeleteFile(t *testing.T) {
	client := &fakeObjectClient{}
	svc := newS3(client, "rental", "https://cdn.example.com", mocks.NewOtel())

	require.NoError(t, svc.DeleteFile(context.Background(), "https://cdn.example.com/cars/car.jpg"))
	assert.Equal(t, "cars/car.jpg", aws.ToString(client.delete.Key))

	client.delete = nil

	require.NoError(t, svc.DeleteFile(context.Background(), "https://elsewhere.example.com/cars/car.jpg"))
	assert.Nil(t, client.delete)
}

func TestObjectName(t *testing.T) {
	name := ObjectName(&multipart.FileHeader{Filename: "front.JPG"})

	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.Len(t, name, 36+len(".jpg"))
	assert.NotEqual(t, name, ObjectName(&multipart.FileHeader{Filename: "front.JPG"}))
}
