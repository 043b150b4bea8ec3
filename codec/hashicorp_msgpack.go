//go:build !skip_codec_hashicorp_msgpack

package codec

import msgpack "github.com/hashicorp/go-msgpack/v2/codec"

type HashicorpMsgpackCodec struct {
	handle *msgpack.MsgpackHandle
}

func NewHashicorpMsgpackCodec() *HashicorpMsgpackCodec {
	return &HashicorpMsgpackCodec{
		handle: new(msgpack.MsgpackHandle),
	}
}

func (c *HashicorpMsgpackCodec) Name() string {
	return "hashicorp-msgpack"
}

func (c *HashicorpMsgpackCodec) Marshal(v interface{}) ([]byte, error) {
	var data []byte

	enc := msgpack.NewEncoderBytes(&data, c.handle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *HashicorpMsgpackCodec) Unmarshal(data []byte, v interface{}) error {
	dec := msgpack.NewDecoderBytes(data, c.handle)
	return dec.Decode(v)
}

var _ Serializer = (*HashicorpMsgpackCodec)(nil)
