package domain

type Folder struct {
	ID         string `json:"id"`
	FolderName string `json:"folder_name"`
}
