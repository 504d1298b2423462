package system

// Disk reports how much space the mounted backup target has left.
type Disk struct{}

func NewDisk() *Disk {
	return &Disk{}
}

// FreeBytes returns the space available to unprivileged writes under path.
func (d *Disk) FreeBytes(path string) (uint64, error) {
	return freeBytes(path)
}
