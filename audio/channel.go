package audio

import "sync"

type ChannelId int

const (
	ChannelIdDefault ChannelId = iota
	ChannelIdMusic
	ChannelIdAmbience
	ChannelIdSfx
	ChannelIdUi
	// ChannelIdSample is used for samples loaded through the winsound facade.
	ChannelIdSample
	// ChannelIdLast is for when you want to define additional channels yourself
	ChannelIdLast
)

type channelSettings struct {
	volume float32
	paused bool
}

func (cid ChannelId) SetVolume(volume float32) {
	settings := getChannelSettings(cid)
	settings.volume = volume
	setChannelSettings(cid, settings)
}

func (cid ChannelId) Volume() float32 {
	return getChannelSettings(cid).volume
}

func (cid ChannelId) Pause() {
	settings := getChannelSettings(cid)
	settings.paused = true
	setChannelSettings(cid, settings)
}

func (cid ChannelId) Resume() {
	settings := getChannelSettings(cid)
	settings.paused = false
	setChannelSettings(cid, settings)
}

func (cid ChannelId) Paused() bool {
	return getChannelSettings(cid).paused
}

var channelSettingsMap = make(map[ChannelId]channelSettings)
var settingsLock sync.RWMutex

func getChannelSettings(id ChannelId) channelSettings {
	settingsLock.RLock()
	s, ok := channelSettingsMap[id]
	settingsLock.RUnlock()
	if ok {
		return s
	}
	return channelSettings{
		volume: 1,
	}
}

func setChannelSettings(id ChannelId, s channelSettings) {
	settingsLock.Lock()
	channelSettingsMap[id] = s
	settingsLock.Unlock()
}

// resetChannelSettings restores full volume and resumes every channel.
func resetChannelSettings() {
	settingsLock.Lock()
	channelSettingsMap = make(map[ChannelId]channelSettings)
	settingsLock.Unlock()
}
