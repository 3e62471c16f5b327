package resources

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not a resource the engine knows how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief Per-camera zoom, pan and turn settings (TOML). */
	ResourceTypeCameraSettings
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeCameraSettings:
		return "camera_settings"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The resource type. */
	ResourceType ResourceType
	/** @brief The name of the resource, the file name without extension. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The decoded resource data. */
	Data interface{}
}
