package dto

// MediaTempMetadata 临时媒体元信息，写入 Redis 供清理任务判定过期
type MediaTempMetadata struct {
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"created_at"`
}

// MediaUploadDTO 上传结果响应
type MediaUploadDTO struct {
	Object string `json:"object"`
	Kind   string `json:"kind"`
	URL    string `json:"url"`
}
