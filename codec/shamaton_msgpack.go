//go:build !skip_codec_shamaton_msgpack

package codec

import shamaton "github.com/shamaton/msgpack/v2"

type ShamatonMsgpackCodec struct{}

func NewShamatonMsgpackCodec() *ShamatonMsgpackCodec {
	return &ShamatonMsgpackCodec{}
}

func (c *ShamatonMsgpackCodec) Name() string {
	return "shamaton-msgpack"
}

func (c *ShamatonMsgpackCodec) Marshal(v interface{}) ([]byte, error) {
	return shamaton.Marshal(v)
}

func (c *ShamatonMsgpackCodec) Unmarshal(data []byte, v interface{}) error {
	return shamaton.Unmarshal(data, v)
}

var _ Serializer = (*ShamatonMsgpackCodec)(nil)
