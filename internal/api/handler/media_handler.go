package handler

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/pkg/consts"
	"Harbor/internal/pkg/minio"
	"Harbor/internal/pkg/redis"
	"Harbor/internal/pkg/response"
	"Harbor/internal/service"
	"io"
	log "log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 上传消息附件
// 文件先进主桶并在 Redis 登记临时元信息，超期未被消息引用的由清理任务回收
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := sniffContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var kind string
	switch {
	case strings.HasPrefix(contentType, consts.MimePrefixImage):
		kind = consts.MimePrefixImage
	case strings.HasPrefix(contentType, consts.MimePrefixVideo):
		kind = consts.MimePrefixVideo
	case strings.HasPrefix(contentType, consts.MimePrefixAudio):
		kind = consts.MimePrefixAudio
	default:
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	meta := dto.MediaTempMetadata{
		MimeType:  contentType,
		Size:      file.Size,
		CreatedAt: time.Now().Unix(),
	}
	metaBytes, _ := json.Marshal(meta)
	_ = redis.HSet(c.Request.Context(), consts.MediaTempKey, fileKey, string(metaBytes))

	log.InfoContext(c.Request.Context(), "media upload success and metadata cached", "fileKey", fileKey, "type", contentType)
	response.Success(c, &dto.MediaUploadDTO{
		Object: fileKey,
		Kind:   kind,
		URL:    minio.ResolveURL(c.Request.Context(), fileKey),
	})
}

// sniffContentType 读取文件头嗅探真实类型，不信任客户端声明
func sniffContentType(f multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
