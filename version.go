package ekdsend

// Version is the library release, reported in the User-Agent header.
const Version = "1.0.0"

const UserAgent = "ekdsend-go/" + Version
