// Package skein reads and writes the skein structured-text format.
//
// skein is a superset of JSON: every JSON document is a skein document.
// It adds bareword scalars, # comments, optional trailing commas and
// !tag type discriminators:
//
//	!acme.Config {
//	  name: web,        # barewords need no quotes
//	  replicas: 3,
//	  ports: [80, 443],
//	}
//
// Marshal and Unmarshal convert Go values directly:
//
//	data, err := skein.Marshal(cfg)
//	err = skein.Unmarshal(data, &cfg)
//
// Encoder and Decoder stream documents over io.Writer/io.Reader and
// implement the codec package's Writer and Reader interfaces, so typed
// codecs and transformers plug in unchanged:
//
//	enc := skein.NewEncoder(os.Stdout)
//	err := codecForT.Serialize(enc, v)
//
// The document tree itself lives in the ir package; parse and encode
// hold the text grammar.
package skein
