//go:build !darwin && !linux

package sources

var currentPlatform = platform{
	name: "other",
}
