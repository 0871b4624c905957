package code

var (
	Success = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	Failed  = NewError(1, lang{en: "Failed", zh_cn: "失败"})

	ErrorServerInternal  = NewError(10000, lang{en: "Server internal error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(10002, lang{en: "API not found", zh_cn: "找不到 API"})
	ErrorTooManyRequests = NewError(10003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery         = NewError(10004, lang{en: "Database query error", zh_cn: "数据库查询错误"})
	ErrorDBWrite         = NewError(10005, lang{en: "Database write error", zh_cn: "数据库写入错误"})

	ErrorFolderNotFound     = NewError(20001, lang{en: "Folder not found", zh_cn: "文件夹不存在"})
	ErrorFolderCreateFailed = NewError(20002, lang{en: "Folder create failed", zh_cn: "文件夹创建失败"})
	ErrorFolderRenameFailed = NewError(20003, lang{en: "Folder rename failed", zh_cn: "文件夹重命名失败"})
	ErrorFolderDeleteFailed = NewError(20004, lang{en: "Folder delete failed", zh_cn: "文件夹删除失败"})
	ErrorFolderListFailed   = NewError(20005, lang{en: "Folder content query failed", zh_cn: "文件夹内容查询失败"})

	ErrorFileNotFound      = NewError(21001, lang{en: "File not found", zh_cn: "文件不存在"})
	ErrorFileRenameFailed  = NewError(21002, lang{en: "File rename failed", zh_cn: "文件重命名失败"})
	ErrorFileDeleteFailed  = NewError(21003, lang{en: "File delete failed", zh_cn: "文件删除失败"})
	ErrorUploadFileFailed  = NewError(21004, lang{en: "Upload file failed", zh_cn: "上传文件失败"})
	ErrorUploadFileTooBig  = NewError(21005, lang{en: "Upload file exceeds size limit", zh_cn: "上传文件超过大小限制"})
	ErrorUploadFileBlocked = NewError(21006, lang{en: "Upload file type not allowed", zh_cn: "上传文件类型不被允许"})

	ErrorInvalidStorageType = NewError(22001, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
	ErrorExportFailed       = NewError(22002, lang{en: "Snapshot export failed", zh_cn: "快照导出失败"})
)
