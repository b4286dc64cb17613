package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrImageNotFound    = errors.New("image asset not found")
	ErrInvalidBasePath  = errors.New("asset base path is not a readable directory")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrPathTraversal    = errors.New("asset path escapes the asset directory")
)
