package assets

import "github.com/spaghettifunk/rtscam/engine/resources"

type Loader interface {
	Load(path string, assetType resources.ResourceType) (*resources.Resource, error) // Data holds the decoded asset, its type depends on the loader
	Unload(*resources.Resource) error
}
