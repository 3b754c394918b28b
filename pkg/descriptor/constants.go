package descriptor

// Descriptor entry names probed inside a plugin archive.
const (
	velocityDescriptor = "velocity-plugin.json"
	bungeeDescriptor   = "bungee.yml"
	commonDescriptor   = "plugin.yml"
)

// Symbolic references searched for in a plugin's compiled main class to infer
// the platform a common (plugin.yml) descriptor targets.
const (
	markerBungeePlugin     = "net/md_5/bungee/api/plugin/Plugin"
	markerBukkitJavaPlugin = "org/bukkit/plugin/java/JavaPlugin"
	markerBukkitAPI        = "org/bukkit/Bukkit"
)
