// Package audio owns the capture side of the pipeline: sample buffers,
// WAV encoding and decoding, resampling, microphone capture through
// portaudio, and file loading with ffmpeg transcoding for non-WAV
// containers. Capture supports a fixed-duration policy and an
// until-silence policy with a configurable energy threshold, debounce
// window, and absolute maximum duration.
package audio
