package typecheck

import "github.com/born-ml/neuraltype/internal/neural"

// Connect checks, without running anything, that the outputs of upstream
// can feed the inputs of downstream under their current contracts.
//
// A single output port feeds a single input port whatever their names.
// Otherwise every required input port must be matched by an output port of
// the same name. Each connected pair must compare as an accepted result.
// Undeclared maps on either side connect to anything.
func Connect(upstream, downstream Typing) error {
	outs, ins := upstream.OutputTypes(), downstream.InputTypes()
	if !outs.Declared() || !ins.Declared() {
		return nil
	}

	if len(outs) == 1 && len(ins) == 1 {
		return connectPorts(outs[0], ins[0])
	}

	for _, in := range ins {
		var src *Port
		for i := range outs {
			if outs[i].Name == in.Name {
				src = &outs[i]
				break
			}
		}
		if src == nil {
			if in.Type.IsOptional() {
				continue
			}
			return bindingErr(in.Name, "no upstream output port of that name")
		}
		if err := connectPorts(*src, in); err != nil {
			return err
		}
	}
	return nil
}

func connectPorts(out, in Port) error {
	if r := neural.Compare(out.Type, in.Type); !r.Accepted() {
		return mismatchErr(in.Name, nil, "upstream port %q is %s, want %s (%s)", out.Name, out.Type, in.Type, r)
	}
	return nil
}
