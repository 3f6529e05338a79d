// Command siksik clips the TVC 2016 LiDAR survey to the SikSik site. Run it
// from a directory holding TVC_ALS_201609.txt and SikSik_shp/.
package main

import (
	"log"

	"github.com/jaffee/commandeer"
	"github.com/pilosa/lidarclip/clip"
)

func main() {
	if err := commandeer.Run(clip.NewMain()); err != nil {
		log.Fatal(err)
	}
}
