package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/rtscam/engine/assets/loaders"
	"github.com/spaghettifunk/rtscam/engine/core"
	"github.com/spaghettifunk/rtscam/engine/resources"
)

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the settings directory, loads assets on demand and
// reloads them when they change on disk. Reloaded assets are published on
// Updates for the frame loop to pick up.
type AssetManager struct {
	dir     string
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	updates  chan *resources.Resource
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		fsnotify: fsWatch,
		updates:  make(chan *resources.Resource, 16),
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	// Register loaders
	am.registerLoader(resources.ResourceTypeCameraSettings, &loaders.SettingsLoader{})

	am.dir = filepath.Clean(assetsDir)
	if err := am.addRecursive(am.dir); err != nil {
		return err
	}

	am.mutex.Lock()
	am.started = true
	am.mutex.Unlock()
	am.wg.Add(1)
	go am.start()

	core.LogInfo("Asset manager watching '%s'.", am.dir)
	return nil
}

// Updates delivers assets reloaded after a change on disk.
func (am *AssetManager) Updates() <-chan *resources.Resource {
	return am.updates
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return core.ErrAssetManagerClosed
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads the named asset of the given type from the watched directory.
func (am *AssetManager) LoadAsset(name string, resourceType resources.ResourceType) (*resources.Resource, error) {
	var path string
	switch resourceType {
	case resources.ResourceTypeCameraSettings:
		path = filepath.Join(am.dir, name+".toml")
	default:
		return nil, fmt.Errorf("%s: %w", resourceType, core.ErrNoLoader)
	}

	am.mutex.RLock()
	_, exists := am.assets[path]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%s: %w", path, core.ErrAssetNotFound)
	}
	return am.load(path)
}

// LoadAll loads every indexed asset of the given type, in path order. Assets
// that fail to load are logged and skipped.
func (am *AssetManager) LoadAll(resourceType resources.ResourceType) []*resources.Resource {
	am.mutex.RLock()
	paths := make([]string, 0, len(am.assets))
	for path, info := range am.assets {
		if info.Type == resourceType {
			paths = append(paths, path)
		}
	}
	am.mutex.RUnlock()
	slices.Sort(paths)

	out := make([]*resources.Resource, 0, len(paths))
	for _, path := range paths {
		res, err := am.load(path)
		if err != nil {
			core.LogError(err.Error())
			continue
		}
		out = append(out, res)
	}
	return out
}

// UnloadAsset releases the data of a loaded asset through its loader.
func (am *AssetManager) UnloadAsset(asset *resources.Resource) error {
	loader, ok := am.loaders[asset.ResourceType]
	if !ok {
		return fmt.Errorf("%s: %w", asset.ResourceType, core.ErrNoLoader)
	}
	return loader.Unload(asset)
}

// Shutdown stops the watcher and closes Updates.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	if !started {
		close(am.updates)
		return am.fsnotify.Close()
	}
	return nil
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

func (am *AssetManager) load(path string) (*resources.Resource, error) {
	am.mutex.Lock()
	asset, exists := am.assets[path]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%s: %w", path, core.ErrAssetNotFound)
	}
	asset.LastLoaded = time.Now()
	am.assets[path] = asset // Update the loaded time
	am.mutex.Unlock()

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("%s: %w", asset.Type, core.ErrNoLoader)
	}
	return loader.Load(path, asset.Type)
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch '%s': %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.reload(e.Name)
			}
			//Can't stat a deleted directory, so just pretend that it's always a directory and
			//try to remove from the watch list...  we really have no clue if it's a directory or not...
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			close(am.updates)
			return
		}
	}
}

// reload indexes path and publishes the freshly loaded asset. A file that
// fails to load, e.g. while an editor is halfway through writing it, is
// logged and skipped; the next write event tries again.
func (am *AssetManager) reload(path string) {
	if am.handleFileEvent(path) == resources.ResourceTypeNone {
		return
	}
	res, err := am.load(filepath.Clean(path))
	if err != nil {
		core.LogError(err.Error())
		return
	}
	core.LogDebug("Reloaded asset '%s'.", res.FullPath)
	select {
	case am.updates <- res:
	case <-am.done:
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// this is probably a very racey process. What if a file is added to a folder before we get the watch added?
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) resources.ResourceType {
	path = filepath.Clean(path)
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if _, exists := am.assets[path]; !exists {
		am.assets[path] = AssetInfo{
			Path: path,
			Type: assetType,
		}
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) resources.ResourceType {
	switch filepath.Ext(path) {
	case ".toml":
		return resources.ResourceTypeCameraSettings
	default:
		return resources.ResourceTypeNone
	}
}
