package player

import (
	"fmt"
	"os"

	"github.com/twoknow/music-hub/internal/config"
)

// DefaultHookScript is the in-player lua hook installed by `musicctl
// init`. It appends one JSON line per lifecycle event to the events
// file named in --script-opts; `musicctl watch` follows that file.
// Players launched without the script simply emit nothing.
const DefaultHookScript = `-- musichub.lua
-- Appends player lifecycle events as JSON lines for music-hub tooling.
local utils = require("mp.utils")
local options = require("mp.options")

local opts = { events_file = "", launch_id = "" }
options.read_options(opts, "musichub")

local function emit(event, extra)
    if opts.events_file == "" then
        return
    end
    local payload = {
        event = event,
        launch_id = opts.launch_id,
        time = os.date("!%Y-%m-%dT%H:%M:%SZ"),
        path = mp.get_property("path"),
        title = mp.get_property("media-title"),
        playback_time = mp.get_property_number("playback-time"),
        duration = mp.get_property_number("duration"),
    }
    if extra then
        for k, v in pairs(extra) do
            payload[k] = v
        end
    end
    local f = io.open(opts.events_file, "a")
    if f then
        f:write(utils.format_json(payload) .. "\n")
        f:close()
    end
end

mp.register_event("file-loaded", function()
    emit("play_start")
end)
mp.register_event("end-file", function(ev)
    emit("play_end", { reason = ev and ev.reason or nil })
end)
mp.register_event("shutdown", function()
    emit("shutdown")
end)
`

// InstallHookScript writes the default hook script if none is present.
// Returns true when a new script was written, false when one already
// existed; user modifications are never overwritten.
func InstallHookScript(paths config.Paths) (bool, error) {
	if _, err := os.Stat(paths.ScriptFile); err == nil {
		return false, nil
	}

	if err := paths.EnsureDirs(); err != nil {
		return false, fmt.Errorf("failed to prepare script directory: %w", err)
	}
	if err := os.WriteFile(paths.ScriptFile, []byte(DefaultHookScript), 0o644); err != nil {
		return false, fmt.Errorf("failed to install player hook script: %w", err)
	}
	return true, nil
}
