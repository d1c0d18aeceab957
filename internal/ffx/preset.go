// If you are AI: This file maps hardware and codec choices to encoder arguments.

package ffx

import (
	"fmt"
	"strings"
)

// Hardware selects the encoder family.
type Hardware string

const (
	HardwareNone   Hardware = "none"
	HardwareAMD    Hardware = "amd"
	HardwareNvidia Hardware = "nvidia"
)

// Codec selects the output video codec.
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecH265 Codec = "h265"
	CodecAV1  Codec = "av1"
)

// ParseHardware resolves a hardware name; empty means none.
func ParseHardware(s string) (Hardware, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "cpu", "software":
		return HardwareNone, nil
	case "amd", "amf":
		return HardwareAMD, nil
	case "nvidia", "nvidea", "nvenc":
		return HardwareNvidia, nil
	}
	return "", fmt.Errorf("unknown hardware encoder %q", s)
}

// ParseCodec resolves a codec name; empty means h264.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "h264", "avc":
		return CodecH264, nil
	case "h265", "hevc", "hvec":
		return CodecH265, nil
	case "av1":
		return CodecAV1, nil
	}
	return "", fmt.Errorf("unknown codec %q", s)
}

// encoderNames holds the ffmpeg encoder per hardware and codec.
var encoderNames = map[Hardware]map[Codec]string{
	HardwareNone:   {CodecH264: "libx264", CodecH265: "libx265", CodecAV1: "libaom-av1"},
	HardwareAMD:    {CodecH264: "h264_amf", CodecH265: "hevc_amf", CodecAV1: "av1_amf"},
	HardwareNvidia: {CodecH264: "h264_nvenc", CodecH265: "hevc_nvenc", CodecAV1: "av1_nvenc"},
}

// PresetArgs returns the codec arguments for a hardware and codec pair.
func PresetArgs(hw Hardware, codec Codec) ([]string, error) {
	names, ok := encoderNames[hw]
	if !ok {
		return nil, fmt.Errorf("unknown hardware encoder %q", hw)
	}
	name, ok := names[codec]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", codec)
	}

	args := []string{"-c:v", name}
	switch {
	case hw == HardwareAMD:
		args = append(args, "-rc", "cqp", "-qp_i", "34", "-qp_p", "34")
	case hw == HardwareNvidia:
		args = append(args, "-preset", "slow")
	case codec != CodecAV1:
		args = append(args, "-preset", "slow", "-crf", "19")
	}
	return args, nil
}
