// Package testutil provides test doubles shared by the package tests.
//
//   - MockTranscriber: scripted api.Transcriber with per-file results, errors
//     and transient failures
//   - MockTranscriptionDAO: in-memory repository.TranscriptionDAO
//   - FakeMedia: prober, extractor and slicer that never run ffmpeg
package testutil
