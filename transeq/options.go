package transeq

import (
	"fmt"

	"github.com/feliixx/gotranslate/translate"
)

// Options struct to store required command line args
type Options struct {
	Frame       string `short:"f" long:"frame" value-name:"<code>" description:"Frame to translate. Possible values:\n  [1, 2, 3, F, -1, -2, -3, R, 6]\n F: forward three frames\n R: reverse three frames\n 6: all 6 frames\n" default:"1"`
	Table       int    `short:"t" long:"table" value-name:"<code>" description:"NCBI code to use, see https://www.ncbi.nlm.nih.gov/Taxonomy/Utils/wprintgc.cgi?chapter=tgencodes#SG1 for details. Available codes: \n 0: Standard code\n 2: The Vertebrate Mitochondrial Code\n 3: The Yeast Mitochondrial Code\n 4: The Mold, Protozoan, and Coelenterate Mitochondrial Code and the Mycoplasma/Spiroplasma Code\n 5: The Invertebrate Mitochondrial Code\n 6: The Ciliate, Dasycladacean and Hexamita Nuclear Code\n 9: The Echinoderm and Flatworm Mitochondrial Code\n 10: The Euplotid Nuclear Code\n 11: The Bacterial, Archaeal and Plant Plastid Code\n 12: The Alternative Yeast Nuclear Code\n 13: The Ascidian Mitochondrial Code\n 14: The Alternative Flatworm Mitochondrial Code\n 16: Chlorophycean Mitochondrial Code\n 21: Trematode Mitochondrial Code\n 22: Scenedesmus obliquus Mitochondrial Code\n 23: Thraustochytrium Mitochondrial Code\n 24: Pterobranchia Mitochondrial Code\n 25: Candidate Division SR1 and Gracilibacteria Code\n 26: Pachysolen tannophilus Nuclear Code\n 29: Mesodinium Nuclear\n 30: Peritrich Nuclear\n" default:"0"`
	Placeholder string `short:"p" long:"placeholder" value-name:"<char>" description:"Character written for codons absent from the genetic code" default:"?"`
	Alternative bool   `short:"a" long:"alternative" description:"Define frame '-1' as using the set of codons starting with the last codon of the sequence"`
	Trim        bool   `short:"T" long:"trim" description:"Removes all placeholder characters from the right end of the translation"`
	Width       int    `short:"w" long:"width" value-name:"<n>" description:"Number of residues per line, 0 to write each protein on a single line" default:"60"`
	NumWorker   int    `short:"n" long:"numcpu" value-name:"<n>" description:"Number of threads to use, default is number of CPU. With more than one thread, sequences may be written in a different order than the input"`
}

// number of frames, 3 forward and 3 reverse
const nFrames = 6

func computeFrames(frameName string) (frames [nFrames]bool, reverse bool, err error) {

	switch frameName {
	case "1":
		frames[0] = true
	case "2":
		frames[1] = true
	case "3":
		frames[2] = true
	case "F":
		for i := 0; i < 3; i++ {
			frames[i] = true
		}
	case "-1":
		frames[3] = true
	case "-2":
		frames[4] = true
	case "-3":
		frames[5] = true
	case "R":
		for i := 3; i < nFrames; i++ {
			frames[i] = true
		}
	case "6":
		for i := range frames {
			frames[i] = true
		}
	default:
		return frames, false, fmt.Errorf("wrong value for -f | --frame parameter: %s", frameName)
	}
	reverse = frames[3] || frames[4] || frames[5]
	return frames, reverse, nil
}

func newTranslator(options Options) (*translate.Translator, error) {

	if len(options.Placeholder) != 1 {
		return nil, fmt.Errorf("wrong value for -p | --placeholder parameter: %q, expected a single character", options.Placeholder)
	}
	if options.Width < 0 {
		return nil, fmt.Errorf("wrong value for -w | --width parameter: %d", options.Width)
	}
	return translate.New(translate.Options{
		Table:       options.Table,
		Placeholder: options.Placeholder[0],
	})
}
