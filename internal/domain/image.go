package domain

import "strings"

// UploadsPrefix: префикс публичного URL загруженных фото.
const UploadsPrefix = "/uploads/"

// Image описывает изображение, которое хранится в S3
type Image struct {
	ObjectKey   string
	Bucket      string
	Data        []byte
	Size        int64
	ContentType string
}

func NewImage(bucket, objectKey string, data []byte, contentType string) *Image {
	return &Image{
		ObjectKey:   objectKey,
		Bucket:      bucket,
		Data:        data,
		Size:        int64(len(data)),
		ContentType: contentType,
	}
}

// ImageURL строит публичный URL по ключу объекта.
func ImageURL(objectKey string) string {
	return UploadsPrefix + objectKey
}

// ObjectKeyFromURL возвращает ключ объекта, если URL указывает на наше хранилище.
// Для внешних URL (например, фото импортированных объявлений) ok == false.
func ObjectKeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, UploadsPrefix) {
		return "", false
	}

	key := strings.TrimPrefix(url, UploadsPrefix)
	return key, key != ""
}
