// Package process runs external helper binaries for the pipeline: ffmpeg
// for transcoding non-WAV audio and nvidia-smi for the accelerator probe.
// Processes are terminated gracefully on context cancellation, SIGTERM
// first and SIGKILL after a grace period.
package process
