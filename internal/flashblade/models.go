package flashblade

// Reference points at another resource on the array.
type Reference struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
}

// Space is the capacity breakdown reported for arrays, file systems,
// buckets and accounts. Sizes are bytes.
type Space struct {
	DataReduction *float64 `json:"data_reduction,omitempty"`
	Snapshots     *int64   `json:"snapshots,omitempty"`
	TotalPhysical *int64   `json:"total_physical,omitempty"`
	Unique        *int64   `json:"unique,omitempty"`
	Virtual       *int64   `json:"virtual,omitempty"`
	TotalUsed     *int64   `json:"total_used,omitempty"`
	Available     *int64   `json:"available,omitempty"`
}

// Array is an item of get_arrays.
type Array struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Banner      string   `json:"banner,omitempty"`
	IdleTimeout *int64   `json:"idle_timeout,omitempty"`
	NTPServers  []string `json:"ntp_servers,omitempty"`
	OS          string   `json:"os,omitempty"`
	ProductType string   `json:"product_type,omitempty"`
	Revision    string   `json:"revision,omitempty"`
	SMBMode     string   `json:"smb_mode,omitempty"`
	TimeZone    string   `json:"time_zone,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// ArraySpace is an item of get_arrays_space.
type ArraySpace struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Capacity *int64   `json:"capacity,omitempty"`
	Parity   *float64 `json:"parity,omitempty"`
	Space    *Space   `json:"space,omitempty"`
	Time     *int64   `json:"time,omitempty"`
	Type     string   `json:"type,omitempty"`
}

// ArrayPerformance is an item of get_arrays_performance.
type ArrayPerformance struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name,omitempty"`
	BytesPerOp       *float64 `json:"bytes_per_op,omitempty"`
	BytesPerRead     *float64 `json:"bytes_per_read,omitempty"`
	BytesPerWrite    *float64 `json:"bytes_per_write,omitempty"`
	OthersPerSec     *float64 `json:"others_per_sec,omitempty"`
	ReadBytesPerSec  *float64 `json:"read_bytes_per_sec,omitempty"`
	ReadsPerSec      *float64 `json:"reads_per_sec,omitempty"`
	Time             *int64   `json:"time,omitempty"`
	UsecPerOtherOp   *float64 `json:"usec_per_other_op,omitempty"`
	UsecPerReadOp    *float64 `json:"usec_per_read_op,omitempty"`
	UsecPerWriteOp   *float64 `json:"usec_per_write_op,omitempty"`
	WriteBytesPerSec *float64 `json:"write_bytes_per_sec,omitempty"`
	WritesPerSec     *float64 `json:"writes_per_sec,omitempty"`
}

// Blade is an item of get_blades.
type Blade struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Details     string   `json:"details,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	RawCapacity *int64   `json:"raw_capacity,omitempty"`
	Status      string   `json:"status,omitempty"`
	Target      string   `json:"target,omitempty"`
}

// Bucket is an item of get_buckets.
type Bucket struct {
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name,omitempty"`
	Account       *Reference `json:"account,omitempty"`
	BucketType    string     `json:"bucket_type,omitempty"`
	Created       *int64     `json:"created,omitempty"`
	Destroyed     *bool      `json:"destroyed,omitempty"`
	ObjectCount   *int64     `json:"object_count,omitempty"`
	QuotaLimit    *int64     `json:"quota_limit,omitempty"`
	Space         *Space     `json:"space,omitempty"`
	TimeRemaining *int64     `json:"time_remaining,omitempty"`
	Versioning    string     `json:"versioning,omitempty"`
}

// ProtocolToggle is the enabled flag of a file system protocol.
type ProtocolToggle struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// NFS is the NFS configuration of a file system.
type NFS struct {
	Enabled      *bool      `json:"enabled,omitempty"`
	V3Enabled    *bool      `json:"v3_enabled,omitempty"`
	V41Enabled   *bool      `json:"v4_1_enabled,omitempty"`
	Rules        string     `json:"rules,omitempty"`
	ExportPolicy *Reference `json:"export_policy,omitempty"`
}

// FileSystem is an item of get_file_systems.
type FileSystem struct {
	ID                         string          `json:"id,omitempty"`
	Name                       string          `json:"name,omitempty"`
	Created                    *int64          `json:"created,omitempty"`
	Destroyed                  *bool           `json:"destroyed,omitempty"`
	FastRemoveDirectoryEnabled *bool           `json:"fast_remove_directory_enabled,omitempty"`
	HardLimitEnabled           *bool           `json:"hard_limit_enabled,omitempty"`
	HTTP                       *ProtocolToggle `json:"http,omitempty"`
	NFS                        *NFS            `json:"nfs,omitempty"`
	PromotionStatus            string          `json:"promotion_status,omitempty"`
	Provisioned                *int64          `json:"provisioned,omitempty"`
	SMB                        *ProtocolToggle `json:"smb,omitempty"`
	SnapshotDirectoryEnabled   *bool           `json:"snapshot_directory_enabled,omitempty"`
	Space                      *Space          `json:"space,omitempty"`
	TimeRemaining              *int64          `json:"time_remaining,omitempty"`
	Writable                   *bool           `json:"writable,omitempty"`
}

// FileSystemSnapshot is an item of get_file_system_snapshots.
type FileSystemSnapshot struct {
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name,omitempty"`
	Created       *int64     `json:"created,omitempty"`
	Destroyed     *bool      `json:"destroyed,omitempty"`
	Owner         *Reference `json:"owner,omitempty"`
	Policy        *Reference `json:"policy,omitempty"`
	Source        *Reference `json:"source,omitempty"`
	Suffix        string     `json:"suffix,omitempty"`
	TimeRemaining *int64     `json:"time_remaining,omitempty"`
}

// ObjectStoreAccount is an item of get_object_store_accounts.
type ObjectStoreAccount struct {
	ID               string `json:"id,omitempty"`
	Name             string `json:"name,omitempty"`
	Created          *int64 `json:"created,omitempty"`
	HardLimitEnabled *bool  `json:"hard_limit_enabled,omitempty"`
	ObjectCount      *int64 `json:"object_count,omitempty"`
	QuotaLimit       *int64 `json:"quota_limit,omitempty"`
	Space            *Space `json:"space,omitempty"`
}

// Alert is an item of get_alerts.
type Alert struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	Action        string `json:"action,omitempty"`
	Code          *int64 `json:"code,omitempty"`
	ComponentName string `json:"component_name,omitempty"`
	ComponentType string `json:"component_type,omitempty"`
	Created       *int64 `json:"created,omitempty"`
	Description   string `json:"description,omitempty"`
	Flagged       *bool  `json:"flagged,omitempty"`
	Index         *int64 `json:"index,omitempty"`
	Notified      *int64 `json:"notified,omitempty"`
	Severity      string `json:"severity,omitempty"`
	State         string `json:"state,omitempty"`
	Summary       string `json:"summary,omitempty"`
	Updated       *int64 `json:"updated,omitempty"`
}

// Hardware is an item of get_hardware.
type Hardware struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Details         string `json:"details,omitempty"`
	IdentifyEnabled *bool  `json:"identify_enabled,omitempty"`
	Index           *int64 `json:"index,omitempty"`
	Model           string `json:"model,omitempty"`
	PartNumber      string `json:"part_number,omitempty"`
	Serial          string `json:"serial,omitempty"`
	Slot            *int64 `json:"slot,omitempty"`
	Speed           *int64 `json:"speed,omitempty"`
	Status          string `json:"status,omitempty"`
	Type            string `json:"type,omitempty"`
}

// NetworkInterface is an item of get_network_interfaces.
type NetworkInterface struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name,omitempty"`
	Address  string     `json:"address,omitempty"`
	Enabled  *bool      `json:"enabled,omitempty"`
	Gateway  string     `json:"gateway,omitempty"`
	MTU      *int64     `json:"mtu,omitempty"`
	Netmask  string     `json:"netmask,omitempty"`
	Services []string   `json:"services,omitempty"`
	Subnet   *Reference `json:"subnet,omitempty"`
	Type     string     `json:"type,omitempty"`
	VLAN     *int64     `json:"vlan,omitempty"`
}
