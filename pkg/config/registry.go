package config

// Persistent state keys (Registry)
const (
	KeyVariant       = "recorder_variant"
	KeyFrameInterval = "display_frame_interval"
	KeyMFDPage       = "mfd_page"
	KeyMFDAltRange   = "mfd_alt_range"
	KeyMFDVradRange  = "mfd_vrad_range"
	KeyMFDVtanRange  = "mfd_vtan_range"
	KeyDialogGraphs  = "dialog_graphs"
)
