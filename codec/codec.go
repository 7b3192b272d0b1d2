package codec

import (
	"fmt"
	"io"

	"github.com/TopiaNetwork/topia-costmodel/codec/json"
)

type CodecType byte

const (
	CodecType_Unknown CodecType = iota
	CodecType_JSON
)

type Marshaler interface {
	Marshal(interface{}) ([]byte, error)

	Unmarshal([]byte, interface{}) error
}

type Encoder interface {
	Encode(interface{}) error
	Reset(w io.Writer)
}

type Decoder interface {
	Decode(interface{}) error
	Reset(r io.Reader)
}

func CreateMarshaler(codecType CodecType) Marshaler {
	switch codecType {
	case CodecType_JSON:
		return &json.MarshalJson{}
	default:
		panic(fmt.Errorf("invalid codec type %d when CreateMarshaler", codecType).Error())
	}
}

func CreateEncoder(codecType CodecType, w io.Writer) Encoder {
	switch codecType {
	case CodecType_JSON:
		return json.NewEncoderJson(w)
	default:
		panic(fmt.Errorf("invalid codec type %d when CreateEncoder", codecType).Error())
	}
}

func CreateDecoder(codecType CodecType, r io.Reader) Decoder {
	switch codecType {
	case CodecType_JSON:
		return json.NewDecoderJson(r)
	default:
		panic(fmt.Errorf("invalid codec type %d when CreateDecoder", codecType).Error())
	}
}
