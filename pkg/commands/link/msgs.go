package link

// MsgTargetRequired is reported when no target instance was given.
const MsgTargetRequired = "You must set the target instance with --target, the media will be linked to."
