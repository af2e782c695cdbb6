package main

import (
	"image"

	"github.com/pkg/errors"
	"github.com/zergon321/reisen"
)

// videoSource pulls frames from the first video stream of a container
// through libav. Audio packets are skipped.
type videoSource struct {
	media   *reisen.Media
	stream  *reisen.VideoStream
	packets func() (*reisen.Packet, bool, error)
	eof     bool
}

func openVideo(fname string) (*videoSource, error) {
	media, err := reisen.NewMedia(fname)
	if err != nil {
		return nil, errors.Wrap(err, "probe container")
	}
	videoStreams := media.VideoStreams()
	if len(videoStreams) == 0 {
		media.Close()
		return nil, errors.New("no video stream")
	}
	err = media.OpenDecode()
	if err != nil {
		media.Close()
		return nil, errors.Wrap(err, "open decoder")
	}
	videoStream := videoStreams[0]
	err = videoStream.Open()
	if err != nil {
		media.CloseDecode()
		media.Close()
		return nil, errors.Wrap(err, "open video stream")
	}
	frameRateNum, frameRateDen := videoStream.FrameRate()
	debugf("event=open_video width=%d height=%d native_fps=%d/%d",
		videoStream.Width(), videoStream.Height(), frameRateNum, frameRateDen)
	return &videoSource{media: media, stream: videoStream, packets: media.ReadPacket}, nil
}

func (s *videoSource) Next() (image.Image, bool, error) {
	for !s.eof {
		packet, gotPacket, err := s.packets()
		if err != nil {
			return nil, false, errors.Wrap(err, "read packet")
		}
		if !gotPacket {
			s.eof = true
			break
		}
		// libav asked for another read
		if packet == nil {
			continue
		}
		if packet.Type() != reisen.StreamVideo || packet.StreamIndex() != s.stream.Index() {
			continue
		}
		videoFrame, gotFrame, err := s.stream.ReadVideoFrame()
		if err != nil {
			return nil, false, errors.Wrap(err, "decode video frame")
		}
		// the decoder may need more packets before it emits a frame
		if !gotFrame || videoFrame == nil {
			continue
		}
		return videoFrame.Image(), true, nil
	}
	return nil, false, nil
}

func (s *videoSource) Close() error {
	if s.media == nil {
		return nil
	}
	streamErr := s.stream.Close()
	decodeErr := s.media.CloseDecode()
	s.media.Close()
	s.media = nil
	if streamErr != nil {
		return errors.Wrap(streamErr, "close video stream")
	}
	return errors.Wrap(decodeErr, "close decoder")
}
